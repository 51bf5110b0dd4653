// Package tui implements the interactive terminal interface for browsing
// and editing payments.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/common"
	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/query"
	"github.com/Veraticus/workshop-payments/internal/tui/themes"
)

// State represents the current state of the TUI.
type State int

// TUI states.
const (
	StateList State = iota
	StateForm
	StateConfirmDelete
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	session   *app.Session
	theme     themes.Theme
	help      help.Model
	keymap    KeyMap
	status    string
	form      form
	config    Config
	result    query.Result
	height    int
	width     int
	cursor    int
	state     State
	statusErr bool
	importing bool
	quitting  bool
}

// New creates a TUI model for the configured session.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Session == nil {
		return Model{}, fmt.Errorf("%w: session is required", common.ErrInvalidConfig)
	}

	m := Model{
		ctx:     ctx,
		session: cfg.Session,
		config:  cfg,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		width:   cfg.Width,
		height:  cfg.Height,
		state:   StateList,
	}
	m.help.Width = cfg.Width
	m.refresh()
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case datasetLoadedMsg:
		return m.handleDatasetLoaded(msg), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case StateForm:
			return m.updateForm(msg)
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg), nil
		case StateHelp:
			m.state = StateList
			m.help.ShowAll = false
			return m, nil
		default:
			return m.updateList(msg)
		}
	}

	if m.state == StateForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp
		m.help.ShowAll = true

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.result.Entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		m.cursor = max(len(m.result.Entries)-1, 0)

	case key.Matches(msg, m.keymap.NextSheet):
		m.cycleSheet(1)
	case key.Matches(msg, m.keymap.PrevSheet):
		m.cycleSheet(-1)

	case key.Matches(msg, m.keymap.NextPerson):
		m.cyclePerson()
	case key.Matches(msg, m.keymap.ClearFilter):
		m.session.SetFilter("")
		m.afterViewChange()

	case key.Matches(msg, m.keymap.SortWho):
		m.sortBy(model.SortWho)
	case key.Matches(msg, m.keymap.SortWhy):
		m.sortBy(model.SortWhy)
	case key.Matches(msg, m.keymap.SortAmount):
		m.sortBy(model.SortAmount)

	case key.Matches(msg, m.keymap.Add):
		if m.session.ActiveSheet() == "" {
			m.setStatus("Import a dataset before adding payments", true)
			break
		}
		m.form = newRowForm(formAdd, model.Row{})
		m.state = StateForm
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.Edit):
		entry, ok := m.selected()
		if !ok {
			break
		}
		row, err := m.session.BeginEdit(entry.Position)
		if err != nil {
			m.setStatus(err.Error(), true)
			break
		}
		m.form = newRowForm(formEdit, row)
		m.state = StateForm
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.Delete):
		if _, ok := m.selected(); ok {
			m.state = StateConfirmDelete
		}

	case key.Matches(msg, m.keymap.Import):
		m.form = newImportForm()
		m.state = StateForm
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.ExportXLSX):
		m.export(app.ExportXLSX)
	case key.Matches(msg, m.keymap.ExportCSV):
		m.export(app.ExportCSV)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		if m.form.mode == formEdit {
			m.session.CancelEdit()
		}
		m.state = StateList
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		return m.submitForm()

	case key.Matches(msg, m.keymap.NextField):
		m.form.next()
		return m, nil

	case key.Matches(msg, m.keymap.PrevField):
		m.form.prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.form.mode {
	case formImport:
		path := strings.TrimSpace(m.form.path())
		if path == "" {
			m.form.err = "path is required"
			return m, nil
		}
		m.state = StateList
		m.importing = true
		m.setStatus("Importing "+path+"...", false)
		return m, loadDataset(m.ctx, m.session.BeginIngest(), path)

	case formEdit:
		who, why, amount := m.form.row()
		err := m.session.CommitEdit(who, why, amount)
		switch {
		case errors.Is(err, common.ErrValidation):
			m.form.err = err.Error()
			return m, nil
		case err != nil:
			m.state = StateList
			m.setStatus("Row changed while editing: "+err.Error(), true)
			m.refresh()
			return m, nil
		}
		m.state = StateList
		m.afterMutation("Saved payment")
		return m, nil

	default:
		who, why, amount := m.form.row()
		if err := m.session.Append(who, why, amount); err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.state = StateList
		m.afterMutation("Added payment")
		m.cursor = m.positionCursor(m.session.Store().Len(m.session.ActiveSheet()) - 1)
		return m, nil
	}
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) Model {
	m.state = StateList
	if msg.String() != "y" && msg.String() != "Y" {
		return m
	}
	entry, ok := m.selected()
	if !ok {
		return m
	}
	if err := m.session.DeleteAt(entry.Position); err != nil {
		m.setStatus(err.Error(), true)
		return m
	}
	m.afterMutation("Deleted payment")
	return m
}

func (m Model) handleDatasetLoaded(msg datasetLoadedMsg) Model {
	m.importing = false
	if msg.err != nil {
		m.setStatus("Import failed: "+msg.err.Error(), true)
		return m
	}
	if err := m.session.CompleteIngest(msg.ticket, msg.raw); err != nil {
		m.setStatus("Ignored "+msg.path+": "+err.Error(), true)
		return m
	}
	m.cursor = 0
	m.afterMutation(fmt.Sprintf("Imported %d sheets from %s", len(msg.raw.Names), msg.path))
	return m
}

func (m *Model) cycleSheet(step int) {
	names := m.session.Store().Names()
	if len(names) == 0 {
		return
	}
	idx := indexOf(names, m.session.ActiveSheet())
	next := names[(idx+step+len(names))%len(names)]
	if err := m.session.SetActiveSheet(next, false); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.cursor = 0
	m.afterViewChange()
}

// cyclePerson moves the filter through everyone on the sheet and then
// back to no filter.
func (m *Model) cyclePerson() {
	people := m.result.People
	if len(people) == 0 {
		return
	}
	idx := indexOf(people, m.result.Filter)
	if idx+1 < len(people) {
		m.session.SetFilter(people[idx+1])
	} else {
		m.session.SetFilter("")
	}
	m.cursor = 0
	m.afterViewChange()
}

func (m *Model) sortBy(k model.SortKey) {
	m.session.SetSort(k)
	m.afterViewChange()
}

func (m *Model) export(format app.ExportFormat) {
	path, err := m.session.ExportTo(m.config.ExportDir, format, m.config.Now())
	if err != nil {
		m.setStatus("Export failed: "+err.Error(), true)
		return
	}
	m.setStatus("Exported "+path, false)
}

func (m *Model) afterMutation(status string) {
	m.refresh()
	if !m.session.Save(m.ctx) {
		m.setStatus(status+" (not saved)", true)
		return
	}
	m.setStatus(status, false)
}

func (m *Model) afterViewChange() {
	m.session.Save(m.ctx)
	m.refresh()
}

func (m *Model) refresh() {
	m.result = m.session.View()
	if m.cursor >= len(m.result.Entries) {
		m.cursor = max(len(m.result.Entries)-1, 0)
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) selected() (query.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.result.Entries) {
		return query.Entry{}, false
	}
	return m.result.Entries[m.cursor], true
}

// positionCursor returns the view index showing the stored row position,
// or the current cursor if that row is filtered out.
func (m Model) positionCursor(position int) int {
	for i, e := range m.result.Entries {
		if e.Position == position {
			return i
		}
	}
	return m.cursor
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
