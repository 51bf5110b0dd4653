// Package workbook decodes external datasets (XLSX, CSV, OFX) into raw
// per-sheet records for ingestion.
package workbook

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/workshop-payments/internal/common"
	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/ofx"
)

// Format is a supported dataset encoding.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatOFX  Format = "ofx"
)

// DetectFormat picks a format from a file name's extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".ofx", ".qfx":
		return FormatOFX, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// DecodeFile opens and decodes the dataset at path.
func DecodeFile(ctx context.Context, path string) (model.RawWorkbook, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return model.RawWorkbook{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(ctx, f, filepath.Base(path))
}

// Decode reads a dataset named name from r. The name selects the format
// and, for CSV, the sheet name.
func Decode(ctx context.Context, r io.Reader, name string) (model.RawWorkbook, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return model.RawWorkbook{}, err
	}

	switch format {
	case FormatXLSX:
		return DecodeXLSX(r)
	case FormatCSV:
		return DecodeCSV(r, strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	default:
		return ofx.NewParser().ParseFile(ctx, r)
	}
}

// DecodeXLSX reads every worksheet. The first row of a sheet holds the
// column labels; each later row becomes a record. Numeric cells decode to
// numbers, everything else to text.
func DecodeXLSX(r io.Reader) (model.RawWorkbook, error) {
	wb := model.NewRawWorkbook()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return wb, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return wb, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}

		records, err := xlsxRecords(f, sheet, rows)
		if err != nil {
			return wb, err
		}
		wb.AddSheet(sheet, records)
	}

	return wb, nil
}

func xlsxRecords(f *excelize.File, sheet string, rows [][]string) ([]model.Record, error) {
	if len(rows) < 2 {
		return nil, nil
	}
	labels := rows[0]

	records := make([]model.Record, 0, len(rows)-1)
	for r, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := make(model.Record, 0, len(labels))
		for c, label := range labels {
			if strings.TrimSpace(label) == "" {
				continue
			}
			var raw string
			if c < len(row) {
				raw = row[c]
			}
			value, err := xlsxValue(f, sheet, c+1, r+2, raw)
			if err != nil {
				return nil, err
			}
			rec = append(rec, model.Field{Label: label, Value: value})
		}
		records = append(records, rec)
	}
	return records, nil
}

func xlsxValue(f *excelize.File, sheet string, col, row int, raw string) (model.Scalar, error) {
	if raw == "" {
		return model.Empty(), nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return model.Scalar{}, err
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return model.Scalar{}, fmt.Errorf("failed to read cell %s!%s: %w", sheet, cell, err)
	}
	if typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return model.Number(n), nil
		}
	}
	return model.Text(raw), nil
}

// DecodeCSV reads a comma-separated table as a single sheet. The first
// line holds the column labels.
func DecodeCSV(r io.Reader, sheet string) (model.RawWorkbook, error) {
	wb := model.NewRawWorkbook()
	if strings.TrimSpace(sheet) == "" {
		sheet = "Sheet1"
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	labels, err := cr.Read()
	if errors.Is(err, io.EOF) {
		wb.AddSheet(sheet, nil)
		return wb, nil
	}
	if err != nil {
		return wb, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(labels) > 0 {
		labels[0] = strings.TrimPrefix(labels[0], "\ufeff")
	}

	var records []model.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return wb, fmt.Errorf("failed to read csv: %w", err)
		}
		if isBlankRow(row) {
			continue
		}

		rec := make(model.Record, 0, len(labels))
		for c, label := range labels {
			value := model.Empty()
			if c < len(row) && row[c] != "" {
				value = model.Text(row[c])
			}
			rec = append(rec, model.Field{Label: label, Value: value})
		}
		records = append(records, rec)
	}

	wb.AddSheet(sheet, records)
	return wb, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
