// Package app holds the application state for one user session: the row
// store, the view selection and the snapshot used to carry both across runs.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/workshop-payments/internal/common"
	"github.com/Veraticus/workshop-payments/internal/ledger"
	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/query"
	"github.com/Veraticus/workshop-payments/internal/sheets"
	"github.com/Veraticus/workshop-payments/internal/storage"
)

// Session owns the store and view state. Every command runs to completion
// before the next; a Session is not safe for concurrent use.
type Session struct {
	store      *ledger.Store
	codec      *storage.Codec
	logger     *slog.Logger
	view       model.ViewState
	generation uint64
}

// IngestTicket binds a pending dataset read to the store it will replace.
type IngestTicket struct {
	generation uint64
}

// SheetSummary describes one sheet for listings.
type SheetSummary struct {
	Name  string
	Rows  int
	Total float64
}

// New creates an empty session. A nil codec disables persistence.
func New(codec *storage.Codec, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		store:  ledger.New(),
		codec:  codec,
		logger: logger,
		view:   model.NewViewState(),
	}
}

// Store returns the session's row store for read access.
func (s *Session) Store() *ledger.Store {
	return s.store
}

// ViewState returns a copy of the current view selection.
func (s *Session) ViewState() model.ViewState {
	v := s.view
	if v.Editing != nil {
		edit := *v.Editing
		v.Editing = &edit
	}
	return v
}

// ActiveSheet returns the active sheet name, or "" when none is selected.
func (s *Session) ActiveSheet() string {
	return s.view.ActiveSheet
}

// Editing returns the in-progress edit, or nil.
func (s *Session) Editing() *model.EditState {
	if s.view.Editing == nil {
		return nil
	}
	edit := *s.view.Editing
	return &edit
}

// Summaries lists every sheet in store order with its row count and total.
func (s *Session) Summaries() []SheetSummary {
	names := s.store.Names()
	out := make([]SheetSummary, 0, len(names))
	for _, name := range names {
		out = append(out, SheetSummary{
			Name:  name,
			Rows:  s.store.Len(name),
			Total: s.store.Total(name),
		})
	}
	return out
}

// Ingest replaces the store with a decoded dataset and activates its first
// sheet. The person filter and any edit are cleared; the sort is kept.
func (s *Session) Ingest(raw model.RawWorkbook) {
	s.store.LoadSheets(raw)
	s.generation++

	s.view.Editing = nil
	s.view.PersonFilter = ""
	s.view.ActiveSheet = ""
	if names := s.store.Names(); len(names) > 0 {
		s.view.ActiveSheet = names[0]
	}

	s.logger.Debug("ingested dataset", "sheets", len(raw.Names), "active", s.view.ActiveSheet)
}

// BeginIngest starts a dataset read. The returned ticket is only honored
// if nothing else changes the store before CompleteIngest.
func (s *Session) BeginIngest() IngestTicket {
	s.generation++
	return IngestTicket{generation: s.generation}
}

// CompleteIngest ingests raw if ticket is still current. A stale ticket
// leaves the store untouched and returns ErrStaleIngest.
func (s *Session) CompleteIngest(ticket IngestTicket, raw model.RawWorkbook) error {
	if ticket.generation != s.generation {
		s.logger.Debug("dropping stale dataset read",
			"ticket", ticket.generation, "current", s.generation)
		return common.ErrStaleIngest
	}
	s.Ingest(raw)
	return nil
}

func (s *Session) activeSheet() (string, error) {
	if s.view.ActiveSheet == "" || !s.store.Has(s.view.ActiveSheet) {
		return "", common.ErrNoActiveSheet
	}
	return s.view.ActiveSheet, nil
}

// Append adds a row to the end of the active sheet.
func (s *Session) Append(who, why string, amount float64) error {
	sheet, err := s.activeSheet()
	if err != nil {
		return err
	}
	if err := s.store.Append(sheet, who, why, amount); err != nil {
		return err
	}
	s.generation++
	return nil
}

// EditAt overwrites the row at position of the active sheet.
func (s *Session) EditAt(position int, who, why string, amount float64) error {
	sheet, err := s.activeSheet()
	if err != nil {
		return err
	}
	if err := s.store.EditAt(sheet, position, who, why, amount); err != nil {
		return err
	}
	s.generation++
	return nil
}

// DeleteAt removes the row at position of the active sheet and re-indexes
// any in-progress edit on that sheet.
func (s *Session) DeleteAt(position int) error {
	sheet, err := s.activeSheet()
	if err != nil {
		return err
	}
	if err := s.store.DeleteAt(sheet, position); err != nil {
		return err
	}
	s.generation++

	if edit := s.view.Editing; edit != nil && edit.Sheet == sheet {
		switch {
		case edit.Position == position:
			s.view.Editing = nil
		case edit.Position > position:
			edit.Position--
		}
	}
	return nil
}

// BeginEdit marks the row at position of the active sheet as being edited.
func (s *Session) BeginEdit(position int) (model.Row, error) {
	sheet, err := s.activeSheet()
	if err != nil {
		return model.Row{}, err
	}
	row, err := s.store.Row(sheet, position)
	if err != nil {
		return model.Row{}, err
	}
	s.view.Editing = &model.EditState{Sheet: sheet, Original: row, Position: position}
	return row, nil
}

// CommitEdit writes the edited values back. When the edited row has moved
// or changed since BeginEdit the edit is dropped and a ReferenceError is
// returned. A validation failure keeps the edit open.
func (s *Session) CommitEdit(who, why string, amount float64) error {
	edit := s.view.Editing
	if edit == nil {
		return common.ErrNotEditing
	}

	current, err := s.store.Row(edit.Sheet, edit.Position)
	if err != nil || current != edit.Original {
		s.view.Editing = nil
		return &common.ReferenceError{Sheet: edit.Sheet, Position: edit.Position}
	}

	if err := s.store.EditAt(edit.Sheet, edit.Position, who, why, amount); err != nil {
		return err
	}
	s.generation++
	s.view.Editing = nil
	return nil
}

// CancelEdit abandons the in-progress edit, if any.
func (s *Session) CancelEdit() {
	s.view.Editing = nil
}

// SetSort sorts by key. Choosing the current key again flips the
// direction; a new key starts ascending. SortNone restores storage order.
func (s *Session) SetSort(key model.SortKey) {
	switch {
	case key == model.SortNone:
		s.view.Sort = model.DefaultSort()
	case key == s.view.Sort.Key:
		s.view.Sort.Ascending = !s.view.Sort.Ascending
	default:
		s.view.Sort = model.Sort{Key: key, Ascending: true}
	}
}

// SetSortDirection sets the direction without changing the key.
func (s *Session) SetSortDirection(ascending bool) {
	s.view.Sort.Ascending = ascending
}

// SetFilter limits the view to one person. An empty person clears it.
func (s *Session) SetFilter(person string) {
	s.view.PersonFilter = strings.TrimSpace(person)
}

// SetActiveSheet switches the active sheet. The edit is always cleared;
// the person filter is cleared unless preserveFilter is set.
func (s *Session) SetActiveSheet(name string, preserveFilter bool) error {
	if !s.store.Has(name) {
		return &common.ReferenceError{Sheet: name, Position: -1}
	}
	s.view.ActiveSheet = name
	s.view.Editing = nil
	if !preserveFilter {
		s.view.PersonFilter = ""
	}
	return nil
}

// View computes the filtered, sorted rows of the active sheet. A person
// filter that no longer matches anyone is cleared.
func (s *Session) View() query.Result {
	res := query.Compute(s.store.Rows(s.view.ActiveSheet), query.FromView(s.view))
	if res.Filter != s.view.PersonFilter {
		s.view.PersonFilter = res.Filter
	}
	return res
}

// Save persists the store and view. It reports whether the snapshot was
// written; failures are logged by the codec.
func (s *Session) Save(ctx context.Context) bool {
	if s.codec == nil {
		return false
	}
	return s.codec.Save(ctx, s.store, s.view)
}

// Restore replaces the session with the saved snapshot, if one exists.
// The saved sheet is activated with its filter kept; when it is missing
// the first sheet is used instead.
func (s *Session) Restore(ctx context.Context) bool {
	if s.codec == nil {
		return false
	}
	snap, ok := s.codec.Load(ctx)
	if !ok {
		return false
	}

	saved := snap.View()
	s.store = snap.Store()
	s.generation++
	s.view = model.NewViewState()
	s.view.Sort = saved.Sort
	s.view.PersonFilter = saved.PersonFilter

	active := saved.ActiveSheet
	if !s.store.Has(active) {
		active = ""
		if names := s.store.Names(); len(names) > 0 {
			active = names[0]
		}
	}
	if active != "" {
		// Has was checked above.
		_ = s.SetActiveSheet(active, true)
	}

	s.logger.Debug("restored snapshot", "sheets", len(s.store.Names()), "active", active)
	return true
}

// ClearSaved deletes the saved snapshot and resets the session.
func (s *Session) ClearSaved(ctx context.Context) bool {
	cleared := true
	if s.codec != nil {
		cleared = s.codec.Clear(ctx)
	}
	s.Reset()
	return cleared
}

// Reset empties the store and returns the view to its defaults.
func (s *Session) Reset() {
	s.store.Reset()
	s.generation++
	s.view = model.NewViewState()
}

// ExportXLSX writes every sheet to w as a spreadsheet workbook.
func (s *Session) ExportXLSX(w io.Writer) error {
	if err := sheets.WriteXLSX(w, s.store); err != nil {
		return fmt.Errorf("failed to export workbook: %w", err)
	}
	return nil
}

// ExportCSV writes the active sheet to w in storage order and returns the
// sheet name.
func (s *Session) ExportCSV(w io.Writer) (string, error) {
	sheet, err := s.activeSheet()
	if err != nil {
		return "", err
	}
	if err := sheets.WriteCSV(w, s.store.Rows(sheet)); err != nil {
		return "", fmt.Errorf("failed to export sheet %q: %w", sheet, err)
	}
	return sheet, nil
}

// Push uploads every sheet through p and returns the spreadsheet ID.
func (s *Session) Push(ctx context.Context, p sheets.Pusher) (string, error) {
	if len(s.store.Names()) == 0 {
		return "", sheets.ErrEmptyWorkbook
	}
	id, err := p.Push(ctx, s.store)
	if err != nil {
		return "", fmt.Errorf("failed to push sheets: %w", err)
	}
	return id, nil
}
