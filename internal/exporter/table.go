package exporter

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/util"
)

// bySkillHeader column order of every by-skill export surface
var bySkillHeader = []string{"SKILL", "CALLS", "Agents Staffed", "AHT", "Abandon %"}

// BySkillDelimited renders the normalized skill table as CSV or TSV
func BySkillDelimited(result *model.AggregateResult, comma rune) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = comma

	w.Write(bySkillHeader)
	for _, rec := range result.Table {
		w.Write([]string{
			rec.Skill,
			strconv.Itoa(rec.Calls),
			strconv.Itoa(rec.AgentsStaffed),
			rec.AHT,
			util.FormatPercent(roundMetric(rec.AbandonPct)),
		})
	}

	w.Flush()
	return sb.String()
}

// KPIDelimited renders the headline totals as a one-row CSV
func KPIDelimited(result *model.AggregateResult) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	w.Write([]string{"Total Calls", "Agents Staffed (sum of per-skill)", "Total Abandon %"})

	abandon := ""
	if result.TotalAbandonPct.Known() {
		abandon = strconv.FormatFloat(util.Round2(result.TotalAbandonPct.Value()), 'f', -1, 64)
	}
	w.Write([]string{
		strconv.Itoa(result.TotalCalls),
		strconv.Itoa(result.TotalAgents),
		abandon,
	})

	w.Flush()
	return sb.String()
}

// BySkillText renders the skill table for terminal/chat paste
func BySkillText(result *model.AggregateResult) string {
	t := table.NewWriter()

	header := table.Row{}
	for _, h := range bySkillHeader {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, rec := range result.Table {
		t.AppendRow(table.Row{
			rec.Skill,
			rec.Calls,
			rec.AgentsStaffed,
			rec.AHT,
			util.FormatPercent(roundMetric(rec.AbandonPct)),
		})
	}

	t.SetStyle(table.StyleLight)
	return t.Render()
}

// TrendsText renders trend buckets for terminal/chat paste
func TrendsText(buckets []model.TrendBucket) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Skill", "Period", "Calls", "AHT", "Abandon %"})

	for _, b := range buckets {
		t.AppendRow(table.Row{
			b.Skill,
			b.Period,
			b.Calls,
			util.FormatDuration(b.AHTSeconds),
			util.FormatPercent(roundMetric(b.AbandonPct)),
		})
	}

	t.SetStyle(table.StyleLight)
	return t.Render()
}
