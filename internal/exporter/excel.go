package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
	"github.com/ArciniegaPatriot/DopeReport/internal/util"
)

const (
	sheetSummary = "Summary"
	sheetBySkill = "By Skill"
	sheetTrends  = "Trends"
)

// BuildWorkbook builds the XLSX export: a Summary sheet with the headline
// KPIs, the full by-skill table, and an optional Trends sheet.
func BuildWorkbook(result *model.AggregateResult, trends []model.TrendBucket, companyName string) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := fillSummarySheet(f, result, companyName); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetBySkill); err != nil {
		return nil, fmt.Errorf("failed to create by-skill sheet: %w", err)
	}
	if err := fillBySkillSheet(f, result); err != nil {
		return nil, err
	}

	if len(trends) > 0 {
		if _, err := f.NewSheet(sheetTrends); err != nil {
			return nil, fmt.Errorf("failed to create trends sheet: %w", err)
		}
		if err := fillTrendsSheet(f, trends); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func fillSummarySheet(f *excelize.File, result *model.AggregateResult, companyName string) error {
	cells := [][2]interface{}{
		{"A1", ReportTitle(companyName)},
		{"A3", "Total Calls"},
		{"B3", result.TotalCalls},
		{"A4", "Agents Staffed (sum of per-skill)"},
		{"B4", result.TotalAgents},
		{"A5", "Total Abandon %"},
		{"B5", util.FormatPercent(roundMetric(result.TotalAbandonPct))},
		{"A6", "Weighted AHT"},
		{"B6", util.FormatDuration(result.TotalAHTSeconds)},
	}
	for _, c := range cells {
		if err := f.SetCellValue(sheetSummary, c[0].(string), c[1]); err != nil {
			return fmt.Errorf("failed to fill summary: %w", err)
		}
	}

	row := 8
	if err := f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), "AHT (By Group)"); err != nil {
		return fmt.Errorf("failed to fill summary: %w", err)
	}
	for _, lookup := range result.Skills {
		row++
		val := NotFoundInReport
		if lookup.Found {
			val = lookup.AHT
		}
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), lookup.Skill)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), val)
	}

	return f.SetColWidth(sheetSummary, "A", "A", 36)
}

func fillBySkillSheet(f *excelize.File, result *model.AggregateResult) error {
	for i, h := range bySkillHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetBySkill, cell, h); err != nil {
			return fmt.Errorf("failed to fill by-skill header: %w", err)
		}
	}

	for r, rec := range result.Table {
		values := []interface{}{
			rec.Skill,
			rec.Calls,
			rec.AgentsStaffed,
			rec.AHT,
			util.FormatPercent(roundMetric(rec.AbandonPct)),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetBySkill, cell, v); err != nil {
				return fmt.Errorf("failed to fill by-skill row %d: %w", r+2, err)
			}
		}
	}

	return f.SetColWidth(sheetBySkill, "A", "A", 28)
}

func fillTrendsSheet(f *excelize.File, trends []model.TrendBucket) error {
	header := []string{"Skill", "Period", "Calls", "AHT", "Abandon %"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetTrends, cell, h); err != nil {
			return fmt.Errorf("failed to fill trends header: %w", err)
		}
	}

	for r, b := range trends {
		values := []interface{}{
			b.Skill,
			b.Period,
			b.Calls,
			util.FormatDuration(b.AHTSeconds),
			util.FormatPercent(roundMetric(b.AbandonPct)),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetTrends, cell, v); err != nil {
				return fmt.Errorf("failed to fill trends row %d: %w", r+2, err)
			}
		}
	}

	return f.SetColWidth(sheetTrends, "A", "B", 24)
}
