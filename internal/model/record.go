package model

import "strconv"

// ScalarKind identifies which variant a Scalar holds.
type ScalarKind int

// Scalar kinds.
const (
	ScalarEmpty ScalarKind = iota
	ScalarText
	ScalarNumber
)

// Scalar is a single cell value read from an external dataset.
type Scalar struct {
	Text   string
	Number float64
	Kind   ScalarKind
}

// Text returns a text scalar.
func Text(s string) Scalar {
	return Scalar{Kind: ScalarText, Text: s}
}

// Number returns a numeric scalar.
func Number(n float64) Scalar {
	return Scalar{Kind: ScalarNumber, Number: n}
}

// Empty returns the empty scalar.
func Empty() Scalar {
	return Scalar{}
}

// String renders the scalar the way a spreadsheet cell would show it.
func (s Scalar) String() string {
	switch s.Kind {
	case ScalarText:
		return s.Text
	case ScalarNumber:
		return strconv.FormatFloat(s.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Field is one labeled value of a Record.
type Field struct {
	Label string
	Value Scalar
}

// Record is an ordered mapping from column label to value. Field order is
// the column order of the source table.
type Record []Field

// RawWorkbook is a decoded external dataset: sheet names in workbook order
// and the raw records of each sheet.
type RawWorkbook struct {
	Tables map[string][]Record
	Names  []string
}

// NewRawWorkbook creates an empty workbook.
func NewRawWorkbook() RawWorkbook {
	return RawWorkbook{Tables: make(map[string][]Record)}
}

// AddSheet appends a sheet. Records for a name already present are
// appended to that sheet so the name keeps its first position.
func (w *RawWorkbook) AddSheet(name string, records []Record) {
	if w.Tables == nil {
		w.Tables = make(map[string][]Record)
	}
	if _, ok := w.Tables[name]; !ok {
		w.Names = append(w.Names, name)
	}
	w.Tables[name] = append(w.Tables[name], records...)
}
