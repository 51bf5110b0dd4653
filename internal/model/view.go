package model

import "fmt"

// SortKey names the column a view is sorted by.
type SortKey string

// Sort keys. SortNone leaves rows in storage order.
const (
	SortNone   SortKey = ""
	SortWho    SortKey = "who"
	SortWhy    SortKey = "why"
	SortAmount SortKey = "amount"
)

// ParseSortKey converts user input into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortNone, SortWho, SortWhy, SortAmount:
		return SortKey(s), nil
	case "how much":
		return SortAmount, nil
	default:
		return SortNone, fmt.Errorf("invalid sort key %q: must be who, why or amount", s)
	}
}

// Sort is the ordering applied to a view.
type Sort struct {
	Key       SortKey `json:"key"`
	Ascending bool    `json:"asc"`
}

// DefaultSort is unsorted, ascending once a key is chosen.
func DefaultSort() Sort {
	return Sort{Ascending: true}
}

// EditState tracks a row being edited. Position is the row index in the
// unsorted sheet; Original is the row as it was when the edit began.
type EditState struct {
	Sheet    string
	Original Row
	Position int
}

// ViewState holds the user's view selection. It refers to the store by
// sheet name and row position only.
type ViewState struct {
	Editing      *EditState
	ActiveSheet  string
	PersonFilter string
	Sort         Sort
}

// NewViewState returns the initial view configuration.
func NewViewState() ViewState {
	return ViewState{Sort: DefaultSort()}
}
