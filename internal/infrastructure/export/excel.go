// Package export renders reports as xlsx workbooks
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one worksheet: a header row followed by data rows
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// AddRow appends a row, converting decimals to numbers so Excel can sum them
func (s *Sheet) AddRow(values ...interface{}) {
	row := make([]interface{}, len(values))
	for i, v := range values {
		switch d := v.(type) {
		case decimal.Decimal:
			row[i] = d.InexactFloat64()
		case *decimal.Decimal:
			if d == nil {
				row[i] = nil
			} else {
				row[i] = d.InexactFloat64()
			}
		default:
			row[i] = v
		}
	}
	s.Rows = append(s.Rows, row)
}

// WriteWorkbook writes sheets, in order, as a single workbook
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, sheet := range sheets {
		name := sheet.Name
		if len(name) > 31 {
			name = name[:31]
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		headers := make([]interface{}, len(sheet.Headers))
		for j, h := range sheet.Headers {
			headers[j] = h
		}
		if err := f.SetSheetRow(name, "A1", &headers); err != nil {
			return err
		}
		if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
			return err
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			values := row
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}
