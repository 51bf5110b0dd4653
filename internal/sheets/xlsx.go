package sheets

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/workshop-payments/internal/ledger"
)

// ErrEmptyWorkbook is returned when there are no sheets to export.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

const maxTabName = 31

// WriteXLSX encodes every sheet of store as one tab of an XLSX workbook.
func WriteXLSX(w io.Writer, store *ledger.Store) error {
	return writeTabs(w, WorkbookTabs(store))
}

func writeTabs(w io.Writer, tabs []Tab) error {
	if len(tabs) == 0 {
		return ErrEmptyWorkbook
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	used := make(map[string]bool, len(tabs))
	defaultSheet := f.GetSheetName(0)
	for i, tab := range tabs {
		name := TabName(tab.Name, used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("failed to name tab %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add tab %q: %w", name, err)
		}

		for r, row := range tab.Values {
			if len(row) == 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			values := row
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return fmt.Errorf("failed to write row %d of %q: %w", r+1, name, err)
			}
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// TabName makes name a valid, unused worksheet name: forbidden characters
// become '_', the result is at most 31 characters, and collisions get a
// numeric suffix. used is updated with the returned name.
func TabName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	clean = strings.Trim(clean, "'")
	if strings.TrimSpace(clean) == "" {
		clean = "Sheet"
	}
	clean = truncate(clean, maxTabName)

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncate(clean, maxTabName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
