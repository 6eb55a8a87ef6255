package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/sheet-copywriter/internal/types"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Products"

// WriteXLSX writes a workbook with one sheet, a bold header row and one row
// per result.
func WriteXLSX(w io.Writer, results []types.GenerationResult) error {
	f, err := buildWorkbook(results)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func buildWorkbook(results []types.GenerationResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := types.ExportColumns()
	if err := setRow(f, 1, header); err != nil {
		_ = f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range results {
		if err := setRow(f, i+2, r.Record()); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write xlsx row %d: %w", row, err)
	}
	return nil
}

// ReadXLSX reads a workbook produced by WriteXLSX back into results.
func ReadXLSX(r io.Reader) ([]types.GenerationResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", SheetName)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[h] = i
	}
	results := []types.GenerationResult{}
	for n, record := range rows[1:] {
		results = append(results, fromRecord(n+1, func(col string) string {
			if i, ok := index[col]; ok && i < len(record) {
				return record[i]
			}
			return ""
		}))
	}
	return results, nil
}

// XLSXBytes renders results into memory.
func XLSXBytes(results []types.GenerationResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
