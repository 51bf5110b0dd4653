package workbook

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/workshop-payments/internal/common"
	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/normalize"
)

func buildXLSX(t *testing.T) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", "Trip"))
	require.NoError(t, f.SetSheetRow("Trip", "A1", &[]any{"Paid To", "Description", "Cost"}))
	require.NoError(t, f.SetSheetRow("Trip", "A2", &[]any{"Alice", "flights", 1200}))
	require.NoError(t, f.SetSheetRow("Trip", "A3", &[]any{"Bob", "", "300.25"}))
	require.NoError(t, f.SetSheetRow("Trip", "A5", &[]any{"Carol", "hotel", 80.5}))

	_, err := f.NewSheet("Food")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Food", "A1", &[]any{"Who", "Why", "How Much"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestDecodeXLSX(t *testing.T) {
	wb, err := DecodeXLSX(buildXLSX(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Trip", "Food"}, wb.Names)
	assert.Empty(t, wb.Tables["Food"])

	trip := wb.Tables["Trip"]
	require.Len(t, trip, 3, "blank spreadsheet row is skipped")

	assert.Equal(t, model.Record{
		{Label: "Paid To", Value: model.Text("Alice")},
		{Label: "Description", Value: model.Text("flights")},
		{Label: "Cost", Value: model.Number(1200)},
	}, trip[0])
	assert.Equal(t, model.Empty(), trip[1][1].Value)
	assert.Equal(t, model.Text("300.25"), trip[1][2].Value)
	assert.Equal(t, model.Number(80.5), trip[2][2].Value)
}

func TestDecodeXLSXNormalizes(t *testing.T) {
	wb, err := DecodeXLSX(buildXLSX(t))
	require.NoError(t, err)

	rows := normalize.Rows(wb.Tables["Trip"])
	assert.Equal(t, []model.Row{
		{Who: "Alice", Why: "flights", Amount: 1200},
		{Who: "Bob", Why: "", Amount: 300.25},
		{Who: "Carol", Why: "hotel", Amount: 80.5},
	}, rows)
}

func TestDecodeXLSXInvalid(t *testing.T) {
	_, err := DecodeXLSX(strings.NewReader("not a zip"))
	assert.Error(t, err)
}

func TestDecodeCSV(t *testing.T) {
	input := "\ufeffWho,Why,How Much\nAlice,flights,\"1,200\"\n,,\nBob,taxi\n"

	wb, err := DecodeCSV(strings.NewReader(input), "trip")
	require.NoError(t, err)

	assert.Equal(t, []string{"trip"}, wb.Names)
	records := wb.Tables["trip"]
	require.Len(t, records, 2)

	assert.Equal(t, "Who", records[0][0].Label)
	assert.Equal(t, model.Text("1,200"), records[0][2].Value)
	assert.Equal(t, model.Empty(), records[1][2].Value, "short row pads with empty")

	rows := normalize.Rows(records)
	assert.Equal(t, []model.Row{
		{Who: "Alice", Why: "flights", Amount: 1200},
		{Who: "Bob", Why: "taxi", Amount: 0},
	}, rows)
}

func TestDecodeCSVEmpty(t *testing.T) {
	wb, err := DecodeCSV(strings.NewReader(""), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1"}, wb.Names)
	assert.Empty(t, wb.Tables["Sheet1"])
}

func TestDecode(t *testing.T) {
	t.Run("csv uses file stem as sheet", func(t *testing.T) {
		wb, err := Decode(context.Background(), strings.NewReader("who,why,amount\na,b,1\n"), "dinner.CSV")
		require.NoError(t, err)
		assert.Equal(t, []string{"dinner"}, wb.Names)
	})

	t.Run("xlsx", func(t *testing.T) {
		wb, err := Decode(context.Background(), buildXLSX(t), "payments.xlsx")
		require.NoError(t, err)
		assert.Equal(t, []string{"Trip", "Food"}, wb.Names)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Decode(context.Background(), strings.NewReader(""), "notes.txt")
		assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
	})
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"a.xlsx", FormatXLSX, false},
		{"a.XLSM", FormatXLSX, false},
		{"a.csv", FormatCSV, false},
		{"a.qfx", FormatOFX, false},
		{"a.ofx", FormatOFX, false},
		{"a", "", true},
		{"a.xls", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
