package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/workshop-payments/internal/model"
)

// WriteCSV encodes one sheet as comma-separated text with a Who,Why,How Much
// header. Rows are written in storage order.
func WriteCSV(w io.Writer, rows []model.Row) error {
	cw := csv.NewWriter(w)
	for _, row := range SheetTable(rows) {
		if err := cw.Write(csvRecord(row)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch val := v.(type) {
		case string:
			out[i] = val
		case float64:
			out[i] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			out[i] = fmt.Sprint(val)
		}
	}
	return out
}
