package model

import (
	"bytes"
	"math"
	"strconv"
)

// Metric float metric that may be unknown (NaN). Unknown values serialize
// as JSON null so snapshots and API responses round-trip cleanly.
type Metric float64

// UnknownMetric the unknown sentinel
func UnknownMetric() Metric {
	return Metric(math.NaN())
}

// Known reports whether the metric holds a real value
func (m Metric) Known() bool {
	return !math.IsNaN(float64(m))
}

// Value underlying float; NaN when unknown
func (m Metric) Value() float64 {
	return float64(m)
}

// MarshalJSON unknown -> null
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Known() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(m), 'f', -1, 64)), nil
}

// UnmarshalJSON null -> unknown
func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = UnknownMetric()
		return nil
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return err
	}
	*m = Metric(f)
	return nil
}
