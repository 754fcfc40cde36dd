package exporter

import (
	"fmt"
	"strings"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/util"
)

// NotFoundInReport sentinel rendered for a skills-of-interest miss
const NotFoundInReport = "Not found in this report"

// ReportTitle report heading, with optional company branding
func ReportTitle(companyName string) string {
	if companyName != "" {
		return companyName + " — Autofilled Metrics (Core)"
	}
	return "Autofilled Metrics (Core)"
}

// BuildMarkdown renders the filled report. Section numbering follows the
// operations template the report is pasted into, which is why it is sparse.
func BuildMarkdown(result *model.AggregateResult, companyName string) string {
	var md strings.Builder
	writeln := func(s string) {
		md.WriteString(s)
		md.WriteString("\n")
	}

	writeln(fmt.Sprintf("## %s", ReportTitle(companyName)))
	writeln("")

	writeln("### 3. Total Calls")
	writeln(fmt.Sprintf("**%d**", result.TotalCalls))
	writeln("")

	writeln("### 4. Agents Staffed (sum of per-skill)")
	writeln(fmt.Sprintf("**%d**", result.TotalAgents))
	writeln("")

	writeln("### 6. Abandon %")
	writeln(fmt.Sprintf("**%s**", util.FormatPercent(roundMetric(result.TotalAbandonPct))))
	writeln("")

	writeln("### 7. AHT (By Group)")
	for _, lookup := range result.Skills {
		val := NotFoundInReport
		if lookup.Found {
			val = lookup.AHT
		}
		writeln(fmt.Sprintf("- **%s:** %s", lookup.Skill, val))
	}

	return md.String()
}

func roundMetric(m model.Metric) model.Metric {
	if !m.Known() {
		return m
	}
	return model.Metric(util.Round2(m.Value()))
}
