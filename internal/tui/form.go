package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/normalize"
)

type formMode int

const (
	formAdd formMode = iota
	formEdit
	formImport
)

// form is a small set of text inputs with one focused at a time.
type form struct {
	err    string
	inputs []textinput.Model
	mode   formMode
	focus  int
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 32
	return in
}

func newRowForm(mode formMode, row model.Row) form {
	who := newInput("who", 64)
	why := newInput("why", 128)
	amount := newInput("how much", 24)

	if mode == formEdit {
		who.SetValue(row.Who)
		why.SetValue(row.Why)
		amount.SetValue(strconv.FormatFloat(row.Amount, 'f', -1, 64))
	}

	f := form{mode: mode, inputs: []textinput.Model{who, why, amount}}
	f.focusInput(0)
	return f
}

func newImportForm() form {
	path := newInput("path to .xlsx, .csv or .ofx file", 512)
	path.Width = 48
	f := form{mode: formImport, inputs: []textinput.Model{path}}
	f.focusInput(0)
	return f
}

func (f *form) focusInput(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) next() {
	f.focusInput((f.focus + 1) % len(f.inputs))
}

func (f *form) prev() {
	f.focusInput((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

// Update forwards msg to the focused input.
func (f form) Update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// row returns the entered payment. Amounts that do not parse become 0.
func (f form) row() (who, why string, amount float64) {
	return f.inputs[0].Value(), f.inputs[1].Value(), normalize.ParseAmount(f.inputs[2].Value())
}

func (f form) path() string {
	return f.inputs[0].Value()
}

func (f form) title() string {
	switch f.mode {
	case formEdit:
		return "Edit payment"
	case formImport:
		return "Import dataset"
	default:
		return "Add payment"
	}
}
