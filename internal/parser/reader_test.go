package parser_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ArciniegaPatriot/DopeReport/internal/parser"
)

func TestReadCSV(t *testing.T) {
	input := " Skill , Calls ,AHT\nMS Info,120,2:05\nPM Connect,80,1:30\n"

	ds, err := parser.ReadCSV(strings.NewReader(input), "/tmp/report.csv", ',')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if ds.Source != "report.csv" {
		t.Errorf("Source=%q, want report.csv", ds.Source)
	}
	want := []string{"Skill", "Calls", "AHT"}
	for i, c := range want {
		if ds.Columns[i] != c {
			t.Errorf("Columns[%d]=%q, want %q", i, ds.Columns[i], c)
		}
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(ds.Rows))
	}
	if got := ds.Cell(1, 0); got != "PM Connect" {
		t.Errorf("Cell(1,0)=%q, want PM Connect", got)
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	input := "Skill,Calls,AHT\nMS Info,120\nPM Connect,80,1:30,extra\n"

	ds, err := parser.ReadCSV(strings.NewReader(input), "ragged.csv", ',')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got := ds.Cell(0, 2); got != "" {
		t.Errorf("short row Cell(0,2)=%q, want blank", got)
	}
	if got := ds.Cell(1, 2); got != "1:30" {
		t.Errorf("Cell(1,2)=%q, want 1:30", got)
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	_, err := parser.ReadCSV(strings.NewReader(""), "empty.csv", ',')
	if !errors.Is(err, parser.ErrNoHeader) {
		t.Fatalf("err=%v, want ErrNoHeader", err)
	}
}

func TestReadAnyTSV(t *testing.T) {
	input := "Skill\tCalls\nMS Info\t120\n"

	ds, err := parser.ReadAny(strings.NewReader(input), "report.tsv")
	if err != nil {
		t.Fatalf("ReadAny: %v", err)
	}
	if got := ds.Cell(0, 1); got != "120" {
		t.Errorf("Cell(0,1)=%q, want 120", got)
	}
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Skill", "Calls", "AHT"},
		{"MS Info", 120, "2:05"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	ds, err := parser.ReadAny(bytes.NewReader(buf.Bytes()), "report.xlsx")
	if err != nil {
		t.Fatalf("ReadAny: %v", err)
	}
	if got := ds.Cell(0, 0); got != "MS Info" {
		t.Errorf("Cell(0,0)=%q, want MS Info", got)
	}
	if got := ds.Cell(0, 1); got != "120" {
		t.Errorf("Cell(0,1)=%q, want 120", got)
	}
}

func TestReadAnyUnknownExtensionFallsBackToCSV(t *testing.T) {
	input := "Skill,Calls\nMS Info,120\n"

	ds, err := parser.ReadAny(strings.NewReader(input), "report.dat")
	if err != nil {
		t.Fatalf("ReadAny: %v", err)
	}
	if got := ds.Cell(0, 0); got != "MS Info" {
		t.Errorf("Cell(0,0)=%q, want MS Info", got)
	}
}
