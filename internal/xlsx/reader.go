// Package xlsx reads spreadsheet answer keys into ordered labeled rows.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row maps a column label to the cell value for one spreadsheet row.
// Labels keep the header row's spelling; extraction is responsible for
// case-insensitive matching.
type Row map[string]string

// Table is an ordered sequence of data rows together with the column
// labels in sheet order.
type Table struct {
	Columns []string
	Rows    []Row
}

// ReadFile loads the first sheet of an .xlsx/.xls workbook. The first
// non-empty row is treated as the header; fully empty data rows are
// skipped.
func ReadFile(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows), nil
}

func fromRows(rows [][]string) *Table {
	t := &Table{}
	for _, raw := range rows {
		if t.Columns == nil {
			if rowEmpty(raw) {
				continue
			}
			for i, label := range raw {
				label = strings.TrimSpace(label)
				if label == "" {
					label = fmt.Sprintf("column_%d", i+1)
				}
				t.Columns = append(t.Columns, label)
			}
			continue
		}
		if rowEmpty(raw) {
			continue
		}
		row := Row{}
		for i, label := range t.Columns {
			if i < len(raw) {
				row[label] = strings.TrimSpace(raw[i])
			} else {
				row[label] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
