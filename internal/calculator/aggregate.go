package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/parser"
)

// ErrEmptyDataset returned instead of proceeding with degenerate aggregates
var ErrEmptyDataset = errors.New("dataset has no data rows")

// MappingError fatal mapping failure: mandatory fields unresolved after
// auto-detection and overrides. Names the fields so the user knows what to pin.
type MappingError struct {
	Missing []model.CanonicalField
}

func (e *MappingError) Error() string {
	labels := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		labels[i] = model.FieldLabel(f)
	}
	return fmt.Sprintf("unresolved mandatory columns: %s", strings.Join(labels, ", "))
}

// Input one aggregation run. All fields are read-only; re-running on the
// same input yields the same output.
type Input struct {
	Dataset  *model.Dataset
	Bindings model.BindingSet

	// Skills skills of interest, raw user input (aliased and deduped here)
	Skills []string

	// Secondary optional un-filtered all-skills totals export. When its
	// calls/agents columns resolve, the corresponding total is replaced
	// wholesale, never blended.
	Secondary         *model.Dataset
	SecondaryBindings model.BindingSet
}

// Aggregate computes the aggregate result and normalized skill table.
// Row-level coercion failures degrade to zero/unknown; only ingestion and
// mapping problems fail the run.
func Aggregate(in Input) (*model.AggregateResult, error) {
	if in.Dataset.Empty() {
		return nil, ErrEmptyDataset
	}
	if missing := in.Bindings.MissingMandatory(); len(missing) > 0 {
		return nil, &MappingError{Missing: missing}
	}

	ds := in.Dataset
	skillCol, _ := in.Bindings.Column(model.FieldSkill)
	callsCol, _ := in.Bindings.Column(model.FieldCalls)
	agentsCol, _ := in.Bindings.Column(model.FieldAgentsStaffed)
	ahtCol, _ := in.Bindings.Column(model.FieldAHT)

	skillIdx := ds.ColumnIndex(skillCol)
	callsIdx := ds.ColumnIndex(callsCol)
	agentsIdx := ds.ColumnIndex(agentsCol)
	ahtIdx := ds.ColumnIndex(ahtCol)

	n := len(ds.Rows)
	table := make([]model.SkillRecord, n)
	for i := 0; i < n; i++ {
		rec := model.SkillRecord{
			Skill:         NormalizeSkill(ds.Cell(i, skillIdx)),
			Calls:         parser.CoerceCount(ds.Cell(i, callsIdx)),
			AgentsStaffed: parser.CoerceCount(ds.Cell(i, agentsIdx)),
			AHT:           ds.Cell(i, ahtIdx),
		}
		if secs, ok := parser.ParseDuration(rec.AHT); ok {
			rec.AHTSeconds = model.Metric(secs)
		} else {
			rec.AHTSeconds = model.UnknownMetric()
		}
		table[i] = rec
	}

	rates, haveRates := abandonRates(ds, in.Bindings, table)
	for i := range table {
		if haveRates {
			table[i].AbandonPct = rates[i]
		} else {
			table[i].AbandonPct = model.UnknownMetric()
		}
	}

	result := &model.AggregateResult{Table: table}

	for _, rec := range table {
		result.TotalCalls += rec.Calls
		result.TotalAgents += rec.AgentsStaffed
	}
	primaryCalls := result.TotalCalls

	applyTotalsOverride(result, in.Secondary, in.SecondaryBindings)

	result.TotalAbandonPct = totalAbandonPct(ds, in.Bindings, table, rates, haveRates, primaryCalls)
	result.TotalAHTSeconds = weightedAHT(table)
	result.Skills = lookupSkills(table, NormalizeSkills(in.Skills))

	return result, nil
}

// abandonRates per-row abandon rates. A bound percent column is trusted over
// locally recomputed count/calls ratios: vendors may exclude short abandons
// and similar business rules invisible in the raw counts.
func abandonRates(ds *model.Dataset, bindings model.BindingSet, table []model.SkillRecord) ([]model.Metric, bool) {
	if pctCol, ok := bindings.Column(model.FieldAbandonPct); ok {
		return ToPercent(ds.Column(ds.ColumnIndex(pctCol))), true
	}

	cntCol, ok := bindings.Column(model.FieldAbandonCount)
	if !ok {
		return nil, false
	}
	cntIdx := ds.ColumnIndex(cntCol)

	rates := make([]model.Metric, len(table))
	for i := range table {
		count, parsed := parser.ParseNumber(ds.Cell(i, cntIdx))
		if !parsed || table[i].Calls == 0 {
			rates[i] = model.UnknownMetric()
			continue
		}
		rates[i] = model.Metric(count / float64(table[i].Calls) * 100)
	}
	return rates, true
}

// totalAbandonPct dataset-wide abandon rate. Counts are exact and preferred:
// sum of abandons over sum of calls. The percent-column fallback is a
// calls-weighted average where missing rates contribute zero, which
// undercounts true abandonment when rates are sparse; that policy is pinned
// by tests rather than silently changed.
func totalAbandonPct(ds *model.Dataset, bindings model.BindingSet, table []model.SkillRecord, rates []model.Metric, haveRates bool, totalCalls int) model.Metric {
	if totalCalls == 0 {
		return model.UnknownMetric()
	}

	if cntCol, ok := bindings.Column(model.FieldAbandonCount); ok {
		cntIdx := ds.ColumnIndex(cntCol)
		var sum float64
		for i := range table {
			if v, parsed := parser.ParseNumber(ds.Cell(i, cntIdx)); parsed {
				sum += v
			}
		}
		return model.Metric(sum / float64(totalCalls) * 100)
	}

	if haveRates {
		var weighted float64
		for i := range table {
			if rates[i].Known() {
				weighted += rates[i].Value() / 100 * float64(table[i].Calls)
			}
		}
		return model.Metric(weighted / float64(totalCalls) * 100)
	}

	return model.UnknownMetric()
}

// weightedAHT calls-weighted dataset AHT. Rows with unknown AHT are excluded
// from numerator and denominator, not treated as zero.
func weightedAHT(table []model.SkillRecord) model.Metric {
	var num, den float64
	for _, rec := range table {
		if !rec.AHTSeconds.Known() {
			continue
		}
		num += rec.AHTSeconds.Value() * float64(rec.Calls)
		den += float64(rec.Calls)
	}
	if den == 0 {
		return model.UnknownMetric()
	}
	return model.Metric(num / den)
}

// applyTotalsOverride replaces total calls/agents from the secondary dataset
// when the matching column resolves there
func applyTotalsOverride(result *model.AggregateResult, secondary *model.Dataset, bindings model.BindingSet) {
	if secondary.Empty() {
		return
	}

	if col, ok := bindings.Column(model.FieldCalls); ok {
		idx := secondary.ColumnIndex(col)
		total := 0
		for i := range secondary.Rows {
			total += parser.CoerceCount(secondary.Cell(i, idx))
		}
		result.TotalCalls = total
		result.CallsOverridden = true
	}

	if col, ok := bindings.Column(model.FieldAgentsStaffed); ok {
		idx := secondary.ColumnIndex(col)
		total := 0
		for i := range secondary.Rows {
			total += parser.CoerceCount(secondary.Cell(i, idx))
		}
		result.TotalAgents = total
		result.AgentsOverridden = true
	}
}

// lookupSkills answers each skills-of-interest entry from the table.
// Case-insensitive exact match, first matching row wins; a miss is a
// sentinel, never an error.
func lookupSkills(table []model.SkillRecord, skills []string) []model.SkillLookup {
	out := make([]model.SkillLookup, 0, len(skills))
	for _, want := range skills {
		lookup := model.SkillLookup{Skill: want, AbandonPct: model.UnknownMetric()}
		for _, rec := range table {
			if strings.EqualFold(rec.Skill, want) {
				lookup.Found = true
				lookup.AHT = rec.AHT
				lookup.AbandonPct = rec.AbandonPct
				break
			}
		}
		out = append(out, lookup)
	}
	return out
}
