package calculator

import (
	"fmt"
	"sort"
	"time"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/parser"
)

// timestampLayouts accepted timestamp formats, most specific first
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
}

// ParseTimestamp parses a report timestamp cell
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PeriodLabel bucket label for a timestamp: exact date, ISO week starting
// Monday, or calendar month
func PeriodLabel(t time.Time, period model.TrendPeriod) string {
	switch period {
	case model.PeriodWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case model.PeriodMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

type trendGroup struct {
	calls        int
	ahtNum       float64
	ahtDen       float64
	abandonNum   float64 // abandoned count sum, or weighted rate sum
	abandonCalls int
}

// Trends groups rows by (skill, period) and computes calls-weighted AHT and
// abandon % per group, with the same count-over-percent precedence as the
// dataset totals. Rows whose timestamp does not parse are skipped; a weighted
// average over an empty denominator reports unknown, never zero.
func Trends(ds *model.Dataset, bindings model.BindingSet, period model.TrendPeriod) ([]model.TrendBucket, error) {
	if ds.Empty() {
		return nil, ErrEmptyDataset
	}
	if missing := bindings.MissingMandatory(); len(missing) > 0 {
		return nil, &MappingError{Missing: missing}
	}
	tsCol, ok := bindings.Column(model.FieldTimestamp)
	if !ok {
		return nil, &MappingError{Missing: []model.CanonicalField{model.FieldTimestamp}}
	}

	skillCol, _ := bindings.Column(model.FieldSkill)
	callsCol, _ := bindings.Column(model.FieldCalls)
	ahtCol, _ := bindings.Column(model.FieldAHT)

	tsIdx := ds.ColumnIndex(tsCol)
	skillIdx := ds.ColumnIndex(skillCol)
	callsIdx := ds.ColumnIndex(callsCol)
	ahtIdx := ds.ColumnIndex(ahtCol)

	cntIdx := -1
	if cntCol, ok := bindings.Column(model.FieldAbandonCount); ok {
		cntIdx = ds.ColumnIndex(cntCol)
	}
	var rates []model.Metric
	if cntIdx < 0 {
		if pctCol, ok := bindings.Column(model.FieldAbandonPct); ok {
			rates = ToPercent(ds.Column(ds.ColumnIndex(pctCol)))
		}
	}

	groups := make(map[string]*trendGroup)
	keys := make(map[string][2]string) // key -> (skill, period label)

	for i := range ds.Rows {
		ts, parsed := ParseTimestamp(ds.Cell(i, tsIdx))
		if !parsed {
			continue
		}
		skill := NormalizeSkill(ds.Cell(i, skillIdx))
		label := PeriodLabel(ts, period)
		key := skill + "\x00" + label

		g := groups[key]
		if g == nil {
			g = &trendGroup{}
			groups[key] = g
			keys[key] = [2]string{skill, label}
		}

		calls := parser.CoerceCount(ds.Cell(i, callsIdx))
		g.calls += calls

		if secs, ok := parser.ParseDuration(ds.Cell(i, ahtIdx)); ok {
			g.ahtNum += secs * float64(calls)
			g.ahtDen += float64(calls)
		}

		if cntIdx >= 0 {
			if v, ok := parser.ParseNumber(ds.Cell(i, cntIdx)); ok {
				g.abandonNum += v
			}
			g.abandonCalls += calls
		} else if rates != nil {
			if rates[i].Known() {
				g.abandonNum += rates[i].Value() / 100 * float64(calls)
			}
			g.abandonCalls += calls
		}
	}

	out := make([]model.TrendBucket, 0, len(groups))
	for key, g := range groups {
		bucket := model.TrendBucket{
			Skill:      keys[key][0],
			Period:     keys[key][1],
			Calls:      g.calls,
			AHTSeconds: model.UnknownMetric(),
			AbandonPct: model.UnknownMetric(),
		}
		if g.ahtDen > 0 {
			bucket.AHTSeconds = model.Metric(g.ahtNum / g.ahtDen)
		}
		if (cntIdx >= 0 || rates != nil) && g.abandonCalls > 0 {
			bucket.AbandonPct = model.Metric(g.abandonNum / float64(g.abandonCalls) * 100)
		}
		out = append(out, bucket)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Skill != out[j].Skill {
			return out[i].Skill < out[j].Skill
		}
		return out[i].Period < out[j].Period
	})

	return out, nil
}
