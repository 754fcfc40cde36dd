package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var reLeadingNumber = regexp.MustCompile(`^(\d+(?:\.\d+)?)`)

// ParseNumber parses a cell as a number, tolerating thousands separators.
// ok=false for blank or non-numeric cells.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CoerceCount parses Calls/Agents cells. Missing or unparseable values
// coerce to 0 rather than failing the row; negatives clamp to 0.
func CoerceCount(s string) int {
	f, ok := ParseNumber(s)
	if !ok || f < 0 {
		return 0
	}
	return int(f)
}

// ParseDuration parses an AHT cell into seconds. Accepts bare seconds
// (integer or decimal), MM:SS and HH:MM:SS; as a last resort a leading
// decimal number in free text ("90 sec"). ok=false means unknown, which
// excludes the row from weighted averages without dropping it.
func ParseDuration(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 && len(parts) != 3 {
			return 0, false
		}
		vals := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil || f < 0 {
				return 0, false
			}
			vals[i] = f
		}
		if len(parts) == 2 {
			return vals[0]*60 + vals[1], true
		}
		return vals[0]*3600 + vals[1]*60 + vals[2], true
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return f, true
	}

	if m := reLeadingNumber.FindString(s); m != "" {
		f, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return f, true
		}
	}

	return 0, false
}

// ParsePercentCell parses one abandon-rate cell, stripping literal percent
// signs. The fraction-vs-percent decision is column-wide and lives in the
// calculator, not here.
func ParsePercentCell(s string) (float64, bool) {
	s = strings.ReplaceAll(s, "%", "")
	return ParseNumber(s)
}
