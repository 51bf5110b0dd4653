// Package model defines the core domain models used throughout the application.
package model

import "strings"

// Row is a single payment: who received it, why, and how much.
type Row struct {
	Who    string  `json:"who"`
	Why    string  `json:"why"`
	Amount float64 `json:"amount"`
}

// NewRow builds a row with trimmed text fields.
func NewRow(who, why string, amount float64) Row {
	return Row{
		Who:    strings.TrimSpace(who),
		Why:    strings.TrimSpace(why),
		Amount: amount,
	}
}

// IsBlank reports whether the row carries no information at all.
// Blank rows are dropped at ingestion.
func (r Row) IsBlank() bool {
	return r.Who == "" && r.Why == "" && r.Amount == 0
}

// SumAmounts totals the amount column of rows.
func SumAmounts(rows []Row) float64 {
	var total float64
	for _, r := range rows {
		total += r.Amount
	}
	return total
}
