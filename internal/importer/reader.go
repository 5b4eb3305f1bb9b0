package importer

import (
	"bufio"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/tabular"
)

// ReadDocument reads a roster file into raw rows. The format is chosen by
// file extension: CSV, TSV, XLSX, or a .txt page-table text extract split on
// whitespace runs. Any other extension is rejected outright.
func ReadDocument(filename string, r io.Reader) ([][]string, domain.DocumentKind, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		rows, err := readDelimited(r, ',')
		return rows, domain.DocumentCSV, err
	case ".tsv":
		rows, err := readDelimited(r, '\t')
		return rows, domain.DocumentTSV, err
	case ".xlsx":
		rows, err := readWorkbook(r)
		return rows, domain.DocumentXLSX, err
	case ".txt":
		rows, err := readTextLines(r)
		return rows, domain.DocumentText, err
	default:
		return nil, "", errors.Unprocessablef("unsupported file type %q: expected .csv, .tsv, .xlsx or .txt", ext)
	}
}

func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Unprocessablef("reading delimited file: %v", err)
	}
	return rows, nil
}

// readWorkbook reads the first sheet of a spreadsheet.
func readWorkbook(r io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Unprocessablef("opening workbook: %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Unprocessable("workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Unprocessablef("reading sheet %q: %v", sheets[0], err)
	}
	return rows, nil
}

func readTextLines(r io.Reader) ([][]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Unprocessablef("reading text file: %v", err)
	}
	return tabular.SplitLines(lines, tabular.NumCanonicalCols), nil
}
