package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/workshop-payments/internal/cli"
)

const (
	numberWidth = 4
	whoWidth    = 18
	amountWidth = 12
	// Lines used by everything except the row list.
	chromeHeight = 10
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderSummary(),
		m.renderTable(),
	}

	switch m.state {
	case StateForm:
		sections = append(sections, m.renderForm())
	case StateConfirmDelete:
		sections = append(sections, m.renderConfirmDelete())
	}

	sections = append(sections, m.renderStatus(), m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and one tab per sheet.
func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.MoneyIcon + " Workshop Payments")

	names := m.session.Store().Names()
	if len(names) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			m.theme.Subtitle.Render("No sheets loaded. Press i to import a dataset."))
	}

	tabs := make([]string, 0, len(names))
	for _, name := range names {
		if name == m.session.ActiveSheet() {
			tabs = append(tabs, m.theme.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(name))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderSummary renders the filter, sort and totals line.
func (m Model) renderSummary() string {
	parts := []string{
		fmt.Sprintf("Total: %s", cli.FormatAmount(m.result.Total)),
		fmt.Sprintf("%d rows", len(m.result.Entries)),
	}

	if m.result.Filter != "" {
		parts = append(parts, fmt.Sprintf("Filter: %s", m.result.Filter))
		if m.result.PersonTotal != nil {
			parts = append(parts, fmt.Sprintf("Total for %s: %s", m.result.Filter, cli.FormatAmount(*m.result.PersonTotal)))
		}
	} else {
		parts = append(parts, "Filter: everyone")
	}

	if m.importing {
		parts = append(parts, "importing...")
	}
	return m.theme.StatusInfo.Render(strings.Join(parts, "  •  "))
}

// renderTable renders the visible window of rows around the cursor.
func (m Model) renderTable() string {
	view := m.session.ViewState()
	headers := cli.SortHeaders(view.Sort)

	whyWidth := max(m.width-numberWidth-whoWidth-amountWidth-6, 12)
	header := m.theme.Header.Render(m.formatLine(headers[0], headers[1], headers[2], headers[3], whyWidth))

	if len(m.result.Entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.theme.Subtitle.Render("No payments."))
	}

	visible := max(m.height-chromeHeight, 3)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.result.Entries))

	lines := []string{header}
	for i := start; i < end; i++ {
		e := m.result.Entries[i]
		line := m.formatLine(
			strconv.Itoa(cli.RowNumber(e.Position)),
			e.Row.Who,
			e.Row.Why,
			cli.FormatAmount(e.Row.Amount),
			whyWidth,
		)
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		} else if m.isEditing(e.Position) {
			line = m.theme.Bold.Render(line)
		} else {
			line = m.theme.Normal.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) formatLine(number, who, why, amount string, whyWidth int) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(numberWidth).Render(number),
		lipgloss.NewStyle().Width(whoWidth).MaxWidth(whoWidth).Render(truncate(who, whoWidth-1)),
		lipgloss.NewStyle().Width(whyWidth).MaxWidth(whyWidth).Render(truncate(why, whyWidth-1)),
		lipgloss.NewStyle().Width(amountWidth).Align(lipgloss.Right).Render(amount),
	)
}

func (m Model) isEditing(position int) bool {
	edit := m.session.Editing()
	return edit != nil && edit.Sheet == m.session.ActiveSheet() && edit.Position == position
}

// renderForm renders the add, edit or import form.
func (m Model) renderForm() string {
	labels := []string{"Who", "Why", "How Much"}
	if m.form.mode == formImport {
		labels = []string{"File"}
	}

	lines := []string{m.theme.Bold.Render(m.form.title())}
	for i, in := range m.form.inputs {
		lines = append(lines, fmt.Sprintf("%-9s %s", labels[i]+":", in.View()))
	}
	if m.form.err != "" {
		lines = append(lines, m.theme.StatusError.Render(cli.ErrorIcon+" "+m.form.err))
	}
	lines = append(lines, m.theme.Subtitle.Render("Enter to save • Tab to move • Esc to cancel"))
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderConfirmDelete() string {
	entry, ok := m.selected()
	if !ok {
		return ""
	}
	return m.theme.StatusError.Render(fmt.Sprintf("Delete %s / %s / %s? (y/n)",
		entry.Row.Who, entry.Row.Why, cli.FormatAmount(entry.Row.Amount)))
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.status)
	}
	return m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.status)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
