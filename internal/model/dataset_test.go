package model_test

import (
	"testing"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

func TestColumnIndexDuplicateLastWins(t *testing.T) {
	ds := &model.Dataset{
		Columns: []string{"Calls", "Skill", "Calls"},
		Rows: [][]string{
			{"10", "MS Info", "20"},
		},
	}

	// duplicate names resolve to the last occurrence, matching the resolver
	if got := ds.ColumnIndex("Calls"); got != 2 {
		t.Errorf("ColumnIndex(Calls)=%d, want 2", got)
	}
	if got := ds.Cell(0, ds.ColumnIndex("Calls")); got != "20" {
		t.Errorf("Cell=%q, want 20", got)
	}
	if got := ds.ColumnIndex("Missing"); got != -1 {
		t.Errorf("ColumnIndex(Missing)=%d, want -1", got)
	}
}

func TestCellBounds(t *testing.T) {
	ds := &model.Dataset{
		Columns: []string{"Skill", "Calls"},
		Rows: [][]string{
			{" MS Info "},
		},
	}

	if got := ds.Cell(0, 0); got != "MS Info" {
		t.Errorf("Cell(0,0)=%q, want trimmed MS Info", got)
	}
	if got := ds.Cell(0, 1); got != "" {
		t.Errorf("short row Cell(0,1)=%q, want blank", got)
	}
	if got := ds.Cell(5, 0); got != "" {
		t.Errorf("out-of-range Cell=%q, want blank", got)
	}
}
