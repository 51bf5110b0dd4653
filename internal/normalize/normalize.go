// Package normalize maps arbitrarily labeled dataset records onto the
// canonical who/why/amount row shape.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/workshop-payments/internal/model"
)

// Canonical identifies the row field a column label maps to.
type Canonical int

// Canonical fields. FieldNone marks a label that is ignored.
const (
	FieldNone Canonical = iota
	FieldWho
	FieldWhy
	FieldAmount
)

var labelFields = map[string]Canonical{
	"who":     FieldWho,
	"to":      FieldWho,
	"paid to": FieldWho,
	"name":    FieldWho,

	"why":         FieldWhy,
	"reason":      FieldWhy,
	"description": FieldWhy,
	"for":         FieldWhy,

	"how much": FieldAmount,
	"amount":   FieldAmount,
	"value":    FieldAmount,
	"cost":     FieldAmount,
}

// Label trims, lowercases and collapses internal whitespace runs.
func Label(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// Field returns the canonical field a column label maps to.
func Field(label string) Canonical {
	return labelFields[Label(label)]
}

// Amount coerces a cell value to a finite number. Invalid input becomes 0.
func Amount(v model.Scalar) float64 {
	switch v.Kind {
	case model.ScalarNumber:
		return finite(v.Number)
	case model.ScalarText:
		return ParseAmount(v.Text)
	default:
		return 0
	}
}

// ParseAmount parses text such as "1,200" or " 3 000.50". Commas and
// spaces are stripped before parsing; anything unparseable is 0.
func ParseAmount(s string) float64 {
	s = strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(n)
}

func finite(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// Row converts one record. When several labels map to the same field the
// last one in record order wins.
func Row(rec model.Record) model.Row {
	var out model.Row
	for _, f := range rec {
		switch Field(f.Label) {
		case FieldWho:
			out.Who = strings.TrimSpace(f.Value.String())
		case FieldWhy:
			out.Why = strings.TrimSpace(f.Value.String())
		case FieldAmount:
			out.Amount = Amount(f.Value)
		case FieldNone:
		}
	}
	return out
}

// Rows converts a raw table, dropping records that produce a blank row.
func Rows(records []model.Record) []model.Row {
	rows := make([]model.Row, 0, len(records))
	for _, rec := range records {
		r := Row(rec)
		if r.IsBlank() {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}
