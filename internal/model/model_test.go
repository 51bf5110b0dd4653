package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRowTrims(t *testing.T) {
	row := NewRow("  Alice ", "\tflights\n", 12.5)
	assert.Equal(t, Row{Who: "Alice", Why: "flights", Amount: 12.5}, row)
}

func TestRowIsBlank(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{name: "zero", row: Row{}, want: true},
		{name: "whitespace only", row: NewRow("  ", " ", 0), want: true},
		{name: "who only", row: Row{Who: "Bob"}},
		{name: "why only", row: Row{Why: "taxi"}},
		{name: "amount only", row: Row{Amount: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.IsBlank())
		})
	}
}

func TestSumAmounts(t *testing.T) {
	assert.Zero(t, SumAmounts(nil))
	assert.InDelta(t, 1580.0, SumAmounts([]Row{{Amount: 1200}, {Amount: 300}, {Amount: 80}}), 1e-9)
}

func TestScalarString(t *testing.T) {
	assert.Equal(t, "", Empty().String())
	assert.Equal(t, "1,200", Text("1,200").String())
	assert.Equal(t, "25", Number(25).String())
	assert.Equal(t, "0.1", Number(0.1).String())
}

func TestRawWorkbookAddSheet(t *testing.T) {
	wb := NewRawWorkbook()
	wb.AddSheet("Trip", []Record{{{Label: "Who", Value: Text("Alice")}}})
	wb.AddSheet("Food", nil)
	wb.AddSheet("Trip", []Record{{{Label: "Who", Value: Text("Bob")}}})

	assert.Equal(t, []string{"Trip", "Food"}, wb.Names)
	assert.Len(t, wb.Tables["Trip"], 2)
	assert.Empty(t, wb.Tables["Food"])

	var zero RawWorkbook
	zero.AddSheet("Only", nil)
	assert.Equal(t, []string{"Only"}, zero.Names)
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{input: "", want: SortNone},
		{input: "who", want: SortWho},
		{input: "why", want: SortWhy},
		{input: "amount", want: SortAmount},
		{input: "how much", want: SortAmount},
		{input: "date", want: SortNone, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewViewState(t *testing.T) {
	v := NewViewState()
	assert.Equal(t, Sort{Key: SortNone, Ascending: true}, v.Sort)
	assert.Empty(t, v.ActiveSheet)
	assert.Empty(t, v.PersonFilter)
	assert.Nil(t, v.Editing)
}
