package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// ErrNoHeader returned when a file carries no header row at all
var ErrNoHeader = errors.New("file has no header row")

// ReadAny reads a report file into a dataset, choosing the reader by file
// extension. Unknown extensions try CSV first and fall back to Excel, the
// same order exports from unidentified vendors usually succeed in.
func ReadAny(r io.Reader, filename string) (*model.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(bytes.NewReader(data), filename, ',')
	case ".tsv":
		return ReadCSV(bytes.NewReader(data), filename, '\t')
	case ".xlsx", ".xls":
		return ReadExcel(bytes.NewReader(data), filename)
	}

	ds, csvErr := ReadCSV(bytes.NewReader(data), filename, ',')
	if csvErr == nil {
		return ds, nil
	}
	ds, xlsErr := ReadExcel(bytes.NewReader(data), filename)
	if xlsErr == nil {
		return ds, nil
	}
	return nil, fmt.Errorf("read %s: %w", filename, csvErr)
}

// ReadCSV reads a delimited text file, first row as header
func ReadCSV(r io.Reader, filename string, comma rune) (*model.Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: %w", filename, ErrNoHeader)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	return &model.Dataset{
		Source:  filepath.Base(filename),
		Columns: header,
		Rows:    records[1:],
	}, nil
}

// ReadExcel reads the first sheet of a workbook, first row as header
func ReadExcel(r io.Reader, filename string) (*model.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("parse %s: workbook has no sheets", filename)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse %s: %w", filename, ErrNoHeader)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	return &model.Dataset{
		Source:  filepath.Base(filename),
		Columns: header,
		Rows:    rows[1:],
	}, nil
}
