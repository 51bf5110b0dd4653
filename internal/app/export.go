package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/workshop-payments/internal/common"
	"github.com/Veraticus/workshop-payments/internal/sheets"
)

// ExportFormat names an export file format.
type ExportFormat string

// Export formats.
const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

// ParseExportFormat converts user input into an ExportFormat.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportXLSX, ExportCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (use xlsx or csv)", common.ErrUnsupportedFormat, s)
	}
}

// ExportTo writes an export file into dir and returns its path. XLSX
// files are named after the date; CSV files after the active sheet.
func (s *Session) ExportTo(dir string, format ExportFormat, now time.Time) (string, error) {
	var (
		name  string
		write func(io.Writer) error
	)
	switch format {
	case ExportXLSX:
		if len(s.store.Names()) == 0 {
			return "", sheets.ErrEmptyWorkbook
		}
		name = sheets.XLSXFilename(now)
		write = s.ExportXLSX
	case ExportCSV:
		sheet, err := s.activeSheet()
		if err != nil {
			return "", err
		}
		name = sheets.CSVFilename(sheet)
		write = func(w io.Writer) error {
			_, err := s.ExportCSV(w)
			return err
		}
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, format)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path) //nolint:gosec // export path is built from the configured directory
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Join(fmt.Errorf("failed to close export file: %w", err), os.Remove(path))
	}

	s.logger.Info("exported payments", "format", format, "path", path)
	return path, nil
}
