package model

import "strings"

// Dataset in-memory tabular report: ordered columns plus string cells.
// Producers (file readers, URL fetcher) hand the core exactly this shape.
type Dataset struct {
	Source  string     `json:"source"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the dataset has no data rows
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// ColumnIndex index of a column by its exact name, -1 when absent.
// Duplicate names resolve to the last occurrence, matching binding behavior.
func (d *Dataset) ColumnIndex(name string) int {
	idx := -1
	for i, c := range d.Columns {
		if c == name {
			idx = i
		}
	}
	return idx
}

// Cell cell value at row/column index, trimmed; short rows read as blank
func (d *Dataset) Cell(row, col int) string {
	if row < 0 || row >= len(d.Rows) || col < 0 {
		return ""
	}
	r := d.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Column all values of one column by index, trimmed
func (d *Dataset) Column(col int) []string {
	out := make([]string, len(d.Rows))
	for i := range d.Rows {
		out[i] = d.Cell(i, col)
	}
	return out
}

// Preview first n rows, for the mapping UI
func (d *Dataset) Preview(n int) [][]string {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	out := make([][]string, n)
	copy(out, d.Rows[:n])
	return out
}
