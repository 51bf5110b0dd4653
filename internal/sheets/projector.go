// Package sheets projects the row store onto exported tables: XLSX
// workbooks, CSV files and Google Sheets spreadsheets.
package sheets

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/workshop-payments/internal/ledger"
	"github.com/Veraticus/workshop-payments/internal/model"
)

// Header is the first row of every exported table.
var Header = []any{"Who", "Why", "How Much"}

// TotalLabel marks the trailing total row of a workbook tab.
const TotalLabel = "TOTAL"

// Tab is one exported sheet.
type Tab struct {
	Name   string
	Values [][]any
}

// SheetTable returns the header followed by one row per stored row, in
// storage order.
func SheetTable(rows []model.Row) [][]any {
	values := make([][]any, 0, len(rows)+1)
	values = append(values, append([]any(nil), Header...))
	for _, r := range rows {
		values = append(values, []any{r.Who, r.Why, r.Amount})
	}
	return values
}

// SheetSection is SheetTable plus a blank separator row and a TOTAL row.
func SheetSection(rows []model.Row) [][]any {
	values := SheetTable(rows)
	return append(values,
		[]any{}, // Empty row
		[]any{"", TotalLabel, model.SumAmounts(rows)},
	)
}

// WorkbookTabs returns one tab per sheet in store order.
func WorkbookTabs(store *ledger.Store) []Tab {
	names := store.Names()
	tabs := make([]Tab, 0, len(names))
	for _, name := range names {
		tabs = append(tabs, Tab{Name: name, Values: SheetSection(store.Rows(name))})
	}
	return tabs
}

// XLSXFilename names a whole-store export made at t.
func XLSXFilename(t time.Time) string {
	return fmt.Sprintf("workshop_payments_%s.xlsx", t.UTC().Format("2006-01-02"))
}

// CSVFilename names a single-sheet export.
// Path separators in the sheet name are replaced with underscores.
func CSVFilename(sheet string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(sheet) + ".csv"
}
