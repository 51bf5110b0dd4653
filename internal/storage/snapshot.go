package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/workshop-payments/internal/ledger"
	"github.com/Veraticus/workshop-payments/internal/model"
	"github.com/Veraticus/workshop-payments/internal/normalize"
)

// DefaultSnapshotKey is the key the snapshot blob is stored under.
const DefaultSnapshotKey = "workshop_payments_state_v1"

// ErrNoSheets is returned when a snapshot blob lacks its sheets object.
var ErrNoSheets = errors.New("snapshot has no sheets")

// Sheets is an ordered sheet-name to rows mapping. It encodes as a JSON
// object whose keys keep sheet order.
type Sheets struct {
	Rows  map[string][]model.Row
	Names []string
}

// MarshalJSON writes the sheets as an object in Names order.
func (s Sheets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.Names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		rows := s.Rows[name]
		if rows == nil {
			rows = []model.Row{}
		}
		v, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a sheets object, recording key order.
func (s *Sheets) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sheets: expected object, got %v", tok)
	}

	s.Rows = make(map[string][]model.Row)
	s.Names = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("sheets: expected name, got %v", tok)
		}
		var raw []snapshotRow
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("sheets: %q: %w", name, err)
		}
		rows := make([]model.Row, 0, len(raw))
		for _, r := range raw {
			rows = append(rows, r.row())
		}
		if _, dup := s.Rows[name]; !dup {
			s.Names = append(s.Names, name)
		}
		s.Rows[name] = rows
	}
	_, err = dec.Token()
	return err
}

// snapshotRow is a stored row as read back. Fields are decoded loosely so
// a single odd value falls back the way ingested cells do instead of
// making the whole snapshot unreadable.
type snapshotRow struct {
	Who    json.RawMessage `json:"who"`
	Why    json.RawMessage `json:"why"`
	Amount json.RawMessage `json:"amount"`
}

func (r snapshotRow) row() model.Row {
	return model.NewRow(
		scalar(r.Who).String(),
		scalar(r.Why).String(),
		normalize.Amount(scalar(r.Amount)),
	)
}

// scalar maps a JSON value onto a cell value. Anything other than a
// string or a number is empty.
func scalar(raw json.RawMessage) model.Scalar {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return model.Empty()
	}
	switch val := v.(type) {
	case string:
		return model.Text(val)
	case float64:
		return model.Number(val)
	default:
		return model.Empty()
	}
}

// SnapshotSort is the persisted sort selection.
type SnapshotSort struct {
	Key *string `json:"key"`
	Asc bool    `json:"asc"`
}

// Snapshot is the persisted form of the store and the kept view fields.
type Snapshot struct {
	Sheets       *Sheets       `json:"sheets"`
	ActiveSheet  *string       `json:"activeSheet"`
	PersonFilter *string       `json:"personFilter"`
	Sort         *SnapshotSort `json:"sort"`
}

// NewSnapshot captures store and the persisted subset of view.
func NewSnapshot(store *ledger.Store, view model.ViewState) Snapshot {
	snap := Snapshot{
		Sheets: &Sheets{Names: store.Names(), Rows: store.Snapshot()},
		Sort:   &SnapshotSort{Asc: view.Sort.Ascending},
	}
	if view.ActiveSheet != "" {
		active := view.ActiveSheet
		snap.ActiveSheet = &active
	}
	if view.Sort.Key != model.SortNone {
		key := string(view.Sort.Key)
		snap.Sort.Key = &key
	}
	if view.PersonFilter != "" {
		person := view.PersonFilter
		snap.PersonFilter = &person
	}
	return snap
}

// Store rebuilds a row store from the snapshot.
func (s Snapshot) Store() *ledger.Store {
	if s.Sheets == nil {
		return ledger.New()
	}
	rows := make(map[string][]model.Row, len(s.Sheets.Rows))
	for name, sheet := range s.Sheets.Rows {
		clean := make([]model.Row, 0, len(sheet))
		for _, r := range sheet {
			clean = append(clean, model.NewRow(r.Who, r.Why, r.Amount))
		}
		rows[name] = clean
	}
	return ledger.FromSheets(s.Sheets.Names, rows)
}

// View returns the persisted view fields. Unknown sort keys are dropped and
// a missing sort keeps the default.
func (s Snapshot) View() model.ViewState {
	view := model.NewViewState()
	if s.ActiveSheet != nil {
		view.ActiveSheet = *s.ActiveSheet
	}
	if s.PersonFilter != nil {
		view.PersonFilter = *s.PersonFilter
	}
	if s.Sort == nil {
		return view
	}
	view.Sort.Ascending = s.Sort.Asc
	if s.Sort.Key != nil {
		if key, err := model.ParseSortKey(*s.Sort.Key); err == nil {
			view.Sort.Key = key
		}
	}
	return view
}

// Codec saves and restores snapshots under one key of a KV medium.
// Persistence failures are logged and never returned.
type Codec struct {
	kv     KV
	logger *slog.Logger
	key    string
}

// NewCodec creates a codec. An empty key selects DefaultSnapshotKey.
func NewCodec(kv KV, key string, logger *slog.Logger) *Codec {
	if key == "" {
		key = DefaultSnapshotKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{kv: kv, key: key, logger: logger}
}

// Key returns the storage key in use.
func (c *Codec) Key() string {
	return c.key
}

// Save writes the snapshot, replacing any previous one. It reports whether
// the snapshot was persisted.
func (c *Codec) Save(ctx context.Context, store *ledger.Store, view model.ViewState) bool {
	blob, err := json.Marshal(NewSnapshot(store, view))
	if err != nil {
		c.logger.Warn("failed to encode snapshot", "error", err)
		return false
	}
	if err := c.kv.Put(ctx, c.key, string(blob)); err != nil {
		c.logger.Warn("failed to persist snapshot", "key", c.key, "error", err)
		return false
	}
	c.logger.Debug("saved snapshot", "key", c.key, "bytes", len(blob))
	return true
}

// Load returns the stored snapshot. The second result is false when no
// usable snapshot exists.
func (c *Codec) Load(ctx context.Context) (*Snapshot, bool) {
	blob, err := c.kv.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("failed to read snapshot", "key", c.key, "error", err)
		}
		return nil, false
	}

	snap, err := Decode([]byte(blob))
	if err != nil {
		c.logger.Warn("ignoring unreadable snapshot", "key", c.key, "error", err)
		return nil, false
	}
	return snap, true
}

// Clear deletes the stored snapshot.
func (c *Codec) Clear(ctx context.Context) bool {
	if err := c.kv.Delete(ctx, c.key); err != nil {
		c.logger.Warn("failed to clear snapshot", "key", c.key, "error", err)
		return false
	}
	return true
}

// Decode parses a snapshot blob.
func Decode(blob []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Sheets == nil {
		return nil, ErrNoSheets
	}
	return &snap, nil
}
