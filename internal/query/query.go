// Package query derives the filtered and sorted view of a sheet without
// touching the row store.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Veraticus/workshop-payments/internal/model"
)

// Entry is one visible row and its position in the unsorted sheet.
type Entry struct {
	Row      model.Row
	Position int
}

// Result is the computed view of a sheet.
type Result struct {
	// PersonTotal is set only while a person filter is active.
	PersonTotal *float64
	// Filter is the person filter that was applied. It is empty when the
	// requested filter named nobody in People.
	Filter  string
	Entries []Entry
	People  []string
	Total   float64
}

// Options controls Compute.
type Options struct {
	Sort         model.Sort
	PersonFilter string
}

// FromView extracts query options from a view state.
func FromView(v model.ViewState) Options {
	return Options{Sort: v.Sort, PersonFilter: v.PersonFilter}
}

// Compute filters, sorts and totals rows.
func Compute(rows []model.Row, opts Options) Result {
	people := People(rows)

	filter := strings.TrimSpace(opts.PersonFilter)
	if filter != "" && !contains(people, filter) {
		filter = ""
	}

	entries := Filter(rows, filter)
	Sort(entries, opts.Sort)

	res := Result{
		Entries: entries,
		People:  people,
		Filter:  filter,
	}
	for _, e := range entries {
		res.Total += e.Row.Amount
	}
	if filter != "" {
		total := res.Total
		res.PersonTotal = &total
	}
	return res
}

// Filter keeps rows whose trimmed payee equals person. An empty person
// keeps every row.
func Filter(rows []model.Row, person string) []Entry {
	entries := make([]Entry, 0, len(rows))
	for i, r := range rows {
		if person != "" && strings.TrimSpace(r.Who) != person {
			continue
		}
		entries = append(entries, Entry{Row: r, Position: i})
	}
	return entries
}

// Sort orders entries in place by the sort key. The sort is stable, so
// equal keys keep their relative order. SortNone leaves entries as they are.
func Sort(entries []Entry, s model.Sort) {
	if s.Key == model.SortNone {
		return
	}
	less := Less(s.Key)
	sort.SliceStable(entries, func(i, j int) bool {
		if s.Ascending {
			return less(entries[i].Row, entries[j].Row)
		}
		return less(entries[j].Row, entries[i].Row)
	})
}

// Less returns the ascending comparator for key: amounts numerically,
// text case-insensitively.
func Less(key model.SortKey) func(a, b model.Row) bool {
	switch key {
	case model.SortAmount:
		return func(a, b model.Row) bool { return a.Amount < b.Amount }
	case model.SortWhy:
		return func(a, b model.Row) bool { return strings.ToLower(a.Why) < strings.ToLower(b.Why) }
	default:
		return func(a, b model.Row) bool { return strings.ToLower(a.Who) < strings.ToLower(b.Who) }
	}
}

// People lists the distinct non-empty payees of rows in collation order.
func People(rows []model.Row) []string {
	seen := make(map[string]struct{}, len(rows))
	people := make([]string, 0, len(rows))
	for _, r := range rows {
		who := strings.TrimSpace(r.Who)
		if who == "" {
			continue
		}
		if _, ok := seen[who]; ok {
			continue
		}
		seen[who] = struct{}{}
		people = append(people, who)
	}
	collate.New(language.Und).SortStrings(people)
	return people
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
