// Package ledger holds the row store: an ordered set of named sheets, each
// an ordered sequence of payment rows.
package ledger

import (
	"github.com/Veraticus/workshop-payments/internal/common"
	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/normalize"
)

// Store maps sheet names to rows. Sheet order is the order names were
// first added; row order is insertion order. The zero value is an empty
// store ready for use.
type Store struct {
	sheets map[string][]model.Row
	names  []string
}

// New returns an empty store.
func New() *Store {
	return &Store{sheets: make(map[string][]model.Row)}
}

// FromSheets builds a store from already-canonical rows.
func FromSheets(names []string, sheets map[string][]model.Row) *Store {
	s := New()
	for _, name := range names {
		if _, dup := s.sheets[name]; dup {
			continue
		}
		s.names = append(s.names, name)
		s.sheets[name] = cloneRows(sheets[name])
	}
	return s
}

// LoadSheets replaces the whole store with rows normalized from raw.
func (s *Store) LoadSheets(raw model.RawWorkbook) {
	s.sheets = make(map[string][]model.Row, len(raw.Names))
	s.names = s.names[:0]
	for _, name := range raw.Names {
		if _, dup := s.sheets[name]; dup {
			continue
		}
		s.names = append(s.names, name)
		s.sheets[name] = normalize.Rows(raw.Tables[name])
	}
}

// Reset empties the store.
func (s *Store) Reset() {
	s.sheets = make(map[string][]model.Row)
	s.names = nil
}

// Names returns sheet names in store order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Has reports whether the sheet exists.
func (s *Store) Has(sheet string) bool {
	_, ok := s.sheets[sheet]
	return ok
}

// Len returns the number of rows in a sheet, 0 when unknown.
func (s *Store) Len(sheet string) int {
	return len(s.sheets[sheet])
}

// Rows returns a copy of a sheet's rows in storage order.
func (s *Store) Rows(sheet string) []model.Row {
	return cloneRows(s.sheets[sheet])
}

// Row returns the row at position.
func (s *Store) Row(sheet string, position int) (model.Row, error) {
	if err := s.checkPosition(sheet, position); err != nil {
		return model.Row{}, err
	}
	return s.sheets[sheet][position], nil
}

// Append adds a row to the end of a sheet.
func (s *Store) Append(sheet, who, why string, amount float64) error {
	row, err := validRow(who, why, amount)
	if err != nil {
		return err
	}
	if !s.Has(sheet) {
		return &common.ReferenceError{Sheet: sheet, Position: -1}
	}
	s.sheets[sheet] = append(s.sheets[sheet], row)
	return nil
}

// EditAt overwrites the row at position in place.
func (s *Store) EditAt(sheet string, position int, who, why string, amount float64) error {
	row, err := validRow(who, why, amount)
	if err != nil {
		return err
	}
	if err := s.checkPosition(sheet, position); err != nil {
		return err
	}
	s.sheets[sheet][position] = row
	return nil
}

// DeleteAt removes the row at position. Rows after it move down by one;
// callers holding positions into this sheet must adjust them.
func (s *Store) DeleteAt(sheet string, position int) error {
	if err := s.checkPosition(sheet, position); err != nil {
		return err
	}
	rows := s.sheets[sheet]
	s.sheets[sheet] = append(rows[:position:position], rows[position+1:]...)
	return nil
}

// Total sums every row of a sheet. Unknown sheets total 0.
func (s *Store) Total(sheet string) float64 {
	return model.SumAmounts(s.sheets[sheet])
}

// Snapshot returns a deep copy of the sheet contents.
func (s *Store) Snapshot() map[string][]model.Row {
	out := make(map[string][]model.Row, len(s.sheets))
	for name, rows := range s.sheets {
		out[name] = cloneRows(rows)
	}
	return out
}

func (s *Store) checkPosition(sheet string, position int) error {
	rows, ok := s.sheets[sheet]
	if !ok {
		return &common.ReferenceError{Sheet: sheet, Position: -1}
	}
	if position < 0 || position >= len(rows) {
		return &common.ReferenceError{Sheet: sheet, Position: position}
	}
	return nil
}

func validRow(who, why string, amount float64) (model.Row, error) {
	row := model.NewRow(who, why, normalize.Amount(model.Number(amount)))
	if row.Who == "" {
		return model.Row{}, &common.ValidationError{Field: "who"}
	}
	if row.Why == "" {
		return model.Row{}, &common.ValidationError{Field: "why"}
	}
	return row, nil
}

func cloneRows(rows []model.Row) []model.Row {
	if rows == nil {
		return []model.Row{}
	}
	out := make([]model.Row, len(rows))
	copy(out, rows)
	return out
}
