package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/query"
)

const amountColumn = 3

// RowNumber converts a stored row position to the number shown to users.
func RowNumber(position int) int {
	return position + 1
}

// RowPosition converts a user-facing row number back to a stored position.
func RowPosition(number int) int {
	return number - 1
}

// SortHeaders returns the column headers with an arrow on the sorted one.
func SortHeaders(s model.Sort) []string {
	headers := []string{"#", "Who", "Why", "How Much"}
	keys := map[model.SortKey]int{model.SortWho: 1, model.SortWhy: 2, model.SortAmount: 3}
	if col, ok := keys[s.Key]; ok {
		arrow := "▲"
		if !s.Ascending {
			arrow = "▼"
		}
		headers[col] += " " + arrow
	}
	return headers
}

// RenderView renders a computed sheet view as a table followed by totals.
func RenderView(sheet string, s model.Sort, res query.Result) string {
	var b strings.Builder

	b.WriteString(FormatTitle(sheet))
	b.WriteString("\n")

	if len(res.Entries) == 0 {
		b.WriteString(SubtleStyle.Render("No payments."))
		b.WriteString("\n")
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(SubtleColor)).
			Headers(SortHeaders(s)...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return TableHeaderStyle
				case col == amountColumn:
					return AmountCellStyle
				default:
					return TableCellStyle
				}
			})
		for _, e := range res.Entries {
			t.Row(strconv.Itoa(RowNumber(e.Position)), e.Row.Who, e.Row.Why, FormatAmount(e.Row.Amount))
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	b.WriteString(TotalStyle.Render(fmt.Sprintf("Total: %s", FormatAmount(res.Total))))
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("  (%d %s)", len(res.Entries), plural(len(res.Entries), "row", "rows"))))
	b.WriteString("\n")

	if res.PersonTotal != nil {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Total for %s: %s", res.Filter, FormatAmount(*res.PersonTotal))))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPeople lists the people a view can be filtered by.
func RenderPeople(people []string, active string) string {
	if len(people) == 0 {
		return SubtleStyle.Render("No people.") + "\n"
	}
	var b strings.Builder
	for _, p := range people {
		marker := "  "
		if p == active {
			marker = SuccessIcon + " "
		}
		b.WriteString(marker + p + "\n")
	}
	return b.String()
}

// RenderSheets lists sheets with their row counts and totals, marking the
// active one.
func RenderSheets(summaries []app.SheetSummary, active string) string {
	if len(summaries) == 0 {
		return SubtleStyle.Render("No sheets loaded. Import a dataset with: payments import <file>") + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(SubtleColor)).
		Headers("", "Sheet", "Rows", "Total").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case col >= 2:
				return AmountCellStyle
			default:
				return TableCellStyle
			}
		})
	for _, s := range summaries {
		marker := ""
		if s.Name == active {
			marker = SuccessIcon
		}
		t.Row(marker, s.Name, strconv.Itoa(s.Rows), FormatAmount(s.Total))
	}
	return t.Render() + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
