package calculator

import (
	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/parser"
)

// ToPercent parses an abandon-rate column onto the 0-100 scale. Literal
// percent signs are stripped per cell; the fraction-vs-percent decision is
// column-wide: only when every parseable value is <= 1.0 is the whole column
// scaled by 100. A single outlier above 1.0 suppresses scaling for the
// entire column, so mixed-representation columns are not corrected
// cell-by-cell.
func ToPercent(cells []string) []model.Metric {
	out := make([]model.Metric, len(cells))

	maxVal := 0.0
	anyKnown := false
	for i, c := range cells {
		v, ok := parser.ParsePercentCell(c)
		if !ok {
			out[i] = model.UnknownMetric()
			continue
		}
		out[i] = model.Metric(v)
		if !anyKnown || v > maxVal {
			maxVal = v
		}
		anyKnown = true
	}

	if anyKnown && maxVal <= 1.0 {
		for i := range out {
			if out[i].Known() {
				out[i] = model.Metric(out[i].Value() * 100)
			}
		}
	}

	return out
}
