package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/common"
	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/storage"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, keyRunes(string(r)))
	}
	return msgs
}

func testWorkbook() model.RawWorkbook {
	field := func(label string, v model.Scalar) model.Field { return model.Field{Label: label, Value: v} }
	wb := model.NewRawWorkbook()
	wb.AddSheet("Trip", []model.Record{
		{field("Who", model.Text("Alice")), field("Why", model.Text("flights")), field("Amount", model.Number(1200))},
		{field("Who", model.Text("Bob")), field("Why", model.Text("taxi")), field("Amount", model.Number(300))},
	})
	wb.AddSheet("Food", []model.Record{
		{field("Who", model.Text("Dan")), field("Why", model.Text("pizza")), field("Amount", model.Number(25))},
	})
	return wb
}

func newTestModel(t *testing.T) (Model, *app.Session, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	session := app.New(storage.NewCodec(kv, "", nil), nil)
	session.Ingest(testWorkbook())

	m, err := New(context.Background(),
		WithSession(session),
		WithSize(100, 30),
		WithExportDir(t.TempDir()),
		WithClock(func() time.Time { return time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, err)
	return m, session, kv
}

func TestNewRequiresSession(t *testing.T) {
	_, err := New(context.Background())
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.cursor)
	m = press(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.cursor, "cursor stops at last row")
	m = press(t, m, keyRunes("g"))
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, keyRunes("G"))
	assert.Equal(t, 1, m.cursor)
}

func TestSheetCycling(t *testing.T) {
	m, session, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Food", session.ActiveSheet())
	assert.Len(t, m.result.Entries, 1)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Trip", session.ActiveSheet())

	_ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "Food", session.ActiveSheet())
}

func TestSortKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, keyRunes("3"))
	assert.InDelta(t, 300, m.result.Entries[0].Row.Amount, 0.001)
	assert.Equal(t, 1, m.result.Entries[0].Position)

	m = press(t, m, keyRunes("3"))
	assert.InDelta(t, 1200, m.result.Entries[0].Row.Amount, 0.001)
}

func TestFilterCycling(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, keyRunes("f"))
	assert.Equal(t, "Alice", m.result.Filter)
	require.NotNil(t, m.result.PersonTotal)
	assert.InDelta(t, 1200, *m.result.PersonTotal, 0.001)

	m = press(t, m, keyRunes("f"))
	assert.Equal(t, "Bob", m.result.Filter)

	m = press(t, m, keyRunes("f"))
	assert.Empty(t, m.result.Filter)

	m = press(t, m, keyRunes("f"), keyRunes("F"))
	assert.Empty(t, m.result.Filter)
	assert.Len(t, m.result.Entries, 2)
}

func TestAddRow(t *testing.T) {
	m, session, kv := newTestModel(t)

	m = press(t, m, keyRunes("a"))
	require.Equal(t, StateForm, m.state)

	msgs := typeText("Eve")
	msgs = append(msgs, tea.KeyMsg{Type: tea.KeyTab})
	msgs = append(msgs, typeText("bus")...)
	msgs = append(msgs, tea.KeyMsg{Type: tea.KeyTab})
	msgs = append(msgs, typeText("1,005")...)
	msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, msgs...)

	assert.Equal(t, StateList, m.state)
	rows := session.Store().Rows("Trip")
	require.Len(t, rows, 3)
	assert.Equal(t, model.Row{Who: "Eve", Why: "bus", Amount: 1005}, rows[2])
	assert.Equal(t, 2, m.cursor)

	_, err := kv.Get(context.Background(), storage.DefaultSnapshotKey)
	assert.NoError(t, err, "mutation is saved")
}

func TestAddRowValidation(t *testing.T) {
	m, session, _ := newTestModel(t)

	m = press(t, m, keyRunes("a"))
	m = press(t, m, typeText("Eve")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateForm, m.state)
	assert.Equal(t, "why is required", m.form.err)
	assert.Equal(t, 2, session.Store().Len("Trip"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateList, m.state)
}

func TestEditRow(t *testing.T) {
	m, session, _ := newTestModel(t)

	m = press(t, m, keyRunes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateForm, m.state)
	assert.Equal(t, "Bob", m.form.inputs[0].Value())
	assert.Equal(t, "300", m.form.inputs[2].Value())
	require.NotNil(t, session.Editing())

	m = press(t, m, typeText("by")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateList, m.state)
	assert.Nil(t, session.Editing())
	assert.Equal(t, "Bobby", session.Store().Rows("Trip")[1].Who)
}

func TestEditCancel(t *testing.T) {
	m, session, _ := newTestModel(t)

	m = press(t, m, keyRunes("e"))
	require.NotNil(t, session.Editing())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateList, m.state)
	assert.Nil(t, session.Editing())
	assert.Equal(t, "Alice", session.Store().Rows("Trip")[0].Who)
}

func TestDeleteRow(t *testing.T) {
	m, session, _ := newTestModel(t)

	m = press(t, m, keyRunes("d"))
	require.Equal(t, StateConfirmDelete, m.state)
	m = press(t, m, keyRunes("n"))
	assert.Equal(t, 2, session.Store().Len("Trip"))

	m = press(t, m, keyRunes("3"), keyRunes("d"), keyRunes("y"))
	assert.Equal(t, StateList, m.state)
	rows := session.Store().Rows("Trip")
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Who, "sorted view deletes by stored position")
}

func TestImport(t *testing.T) {
	m, session, _ := newTestModel(t)

	other := model.NewRawWorkbook()
	other.AddSheet("New", nil)

	stale := session.BeginIngest()
	fresh := session.BeginIngest()

	m = press(t, m, datasetLoadedMsg{ticket: stale, raw: other, path: "old.csv"})
	assert.True(t, m.statusErr)
	assert.Equal(t, []string{"Trip", "Food"}, session.Store().Names())

	m = press(t, m, datasetLoadedMsg{ticket: fresh, raw: other, path: "new.csv"})
	assert.False(t, m.statusErr)
	assert.Equal(t, []string{"New"}, session.Store().Names())
	assert.Contains(t, m.status, "Imported 1 sheets")
}

func TestImportFromForm(t *testing.T) {
	m, session, _ := newTestModel(t)

	path := filepath.Join(t.TempDir(), "dinner.csv")
	require.NoError(t, os.WriteFile(path, []byte("who,why,amount\nZoe,soup,12\n"), 0o600))

	m = press(t, m, keyRunes("i"))
	m = press(t, m, typeText(path)...)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.importing)

	m = press(t, m, cmd())
	assert.False(t, m.importing)
	assert.Equal(t, []string{"dinner"}, session.Store().Names())
	assert.Equal(t, "dinner", session.ActiveSheet())
}

func TestExport(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, keyRunes("x"))
	assert.False(t, m.statusErr, m.status)
	assert.FileExists(t, filepath.Join(m.config.ExportDir, "workshop_payments_2026-10-17.xlsx"))

	m = press(t, m, keyRunes("c"))
	assert.False(t, m.statusErr, m.status)
	assert.FileExists(t, filepath.Join(m.config.ExportDir, "Trip.csv"))
}

func TestViewRendering(t *testing.T) {
	m, _, _ := newTestModel(t)

	out := m.View()
	assert.Contains(t, out, "Workshop Payments")
	assert.Contains(t, out, "Trip")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "Total: 1,500")

	m = press(t, m, keyRunes("a"))
	assert.Contains(t, m.View(), "Add payment")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, keyRunes("d"))
	assert.Contains(t, m.View(), "Delete Alice")
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, keyRunes("?"))
	assert.Equal(t, StateHelp, m.state)
	assert.True(t, m.help.ShowAll)

	m = press(t, m, keyRunes("x"))
	assert.Equal(t, StateList, m.state)
}
