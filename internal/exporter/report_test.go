package exporter_test

import (
	"strings"
	"testing"

	"github.com/ArciniegaPatriot/DopeReport/internal/exporter"
	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

func sampleResult() *model.AggregateResult {
	return &model.AggregateResult{
		TotalCalls:      150,
		TotalAgents:     15,
		TotalAbandonPct: model.Metric(6.6667),
		TotalAHTSeconds: model.Metric(160),
		Table: []model.SkillRecord{
			{Skill: "MS Info", Calls: 100, AgentsStaffed: 10, AHT: "2:00", AHTSeconds: model.Metric(120), AbandonPct: model.Metric(5)},
			{Skill: "PM Connect", Calls: 50, AgentsStaffed: 5, AHT: "4:00", AHTSeconds: model.Metric(240), AbandonPct: model.UnknownMetric()},
		},
		Skills: []model.SkillLookup{
			{Skill: "MS Info", Found: true, AHT: "2:00", AbandonPct: model.Metric(5)},
			{Skill: "MS Loyalty", Found: false, AbandonPct: model.UnknownMetric()},
		},
	}
}

func TestBuildMarkdown(t *testing.T) {
	md := exporter.BuildMarkdown(sampleResult(), "Acme")

	wantLines := []string{
		"## Acme — Autofilled Metrics (Core)",
		"### 3. Total Calls",
		"**150**",
		"### 4. Agents Staffed (sum of per-skill)",
		"**15**",
		"### 6. Abandon %",
		"**6.67%**",
		"### 7. AHT (By Group)",
		"- **MS Info:** 2:00",
		"- **MS Loyalty:** " + exporter.NotFoundInReport,
	}
	for _, want := range wantLines {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestBuildMarkdownNoCompany(t *testing.T) {
	md := exporter.BuildMarkdown(sampleResult(), "")
	if !strings.HasPrefix(md, "## Autofilled Metrics (Core)") {
		t.Errorf("unexpected heading:\n%s", md)
	}
}

func TestBySkillDelimited(t *testing.T) {
	got := exporter.BySkillDelimited(sampleResult(), ',')

	want := "SKILL,CALLS,Agents Staffed,AHT,Abandon %\n" +
		"MS Info,100,10,2:00,5.00%\n" +
		"PM Connect,50,5,4:00,N/A\n"
	if got != want {
		t.Errorf("csv mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBySkillDelimitedTab(t *testing.T) {
	got := exporter.BySkillDelimited(sampleResult(), '\t')
	if !strings.Contains(got, "MS Info\t100\t10\t2:00\t5.00%") {
		t.Errorf("tsv mismatch:\n%s", got)
	}
}

func TestKPIDelimited(t *testing.T) {
	got := exporter.KPIDelimited(sampleResult())

	want := "Total Calls,Agents Staffed (sum of per-skill),Total Abandon %\n" +
		"150,15,6.67\n"
	if got != want {
		t.Errorf("kpi csv mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBySkillText(t *testing.T) {
	got := exporter.BySkillText(sampleResult())
	for _, want := range []string{"SKILL", "MS Info", "PM Connect", "5.00%", "N/A"} {
		if !strings.Contains(got, want) {
			t.Errorf("text table missing %q:\n%s", want, got)
		}
	}
}

func TestBuildWorkbook(t *testing.T) {
	trends := []model.TrendBucket{
		{Skill: "MS Info", Period: "2026-01-05", Calls: 200, AHTSeconds: model.Metric(150), AbandonPct: model.Metric(5)},
	}

	f, err := exporter.BuildWorkbook(sampleResult(), trends, "Acme")
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	wantSheets := map[string]bool{"Summary": true, "By Skill": true, "Trends": true}
	for _, s := range sheets {
		delete(wantSheets, s)
	}
	if len(wantSheets) != 0 {
		t.Errorf("missing sheets %v, have %v", wantSheets, sheets)
	}

	if got, _ := f.GetCellValue("Summary", "A1"); got != "Acme — Autofilled Metrics (Core)" {
		t.Errorf("Summary!A1=%q", got)
	}
	if got, _ := f.GetCellValue("By Skill", "A2"); got != "MS Info" {
		t.Errorf("By Skill!A2=%q", got)
	}
	if got, _ := f.GetCellValue("Trends", "B2"); got != "2026-01-05" {
		t.Errorf("Trends!B2=%q", got)
	}
}

func TestBuildWorkbookNoTrends(t *testing.T) {
	f, err := exporter.BuildWorkbook(sampleResult(), nil, "")
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	for _, s := range f.GetSheetList() {
		if s == "Trends" {
			t.Error("Trends sheet present without trend data")
		}
	}
}
