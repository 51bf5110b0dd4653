package sheets

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/workshop-payments/internal/ledger"
	"github.com/Veraticus/workshop-payments/internal/model"
)

func testStore() *ledger.Store {
	return ledger.FromSheets([]string{"Trip", "Food"}, map[string][]model.Row{
		"Trip": {
			{Who: "Alice", Why: "flights", Amount: 1200},
			{Who: "Bob", Why: "", Amount: 300.25},
		},
		"Food": {
			{Who: "Carol", Why: "pizza, large", Amount: 18},
		},
	})
}

func TestSheetTable(t *testing.T) {
	values := SheetTable(testStore().Rows("Trip"))

	assert.Equal(t, [][]any{
		{"Who", "Why", "How Much"},
		{"Alice", "flights", 1200.0},
		{"Bob", "", 300.25},
	}, values)
}

func TestWorkbookTabs(t *testing.T) {
	tabs := WorkbookTabs(testStore())

	require.Len(t, tabs, 2)
	assert.Equal(t, "Trip", tabs[0].Name)
	assert.Equal(t, "Food", tabs[1].Name)
	assert.Equal(t, [][]any{
		{"Who", "Why", "How Much"},
		{"Alice", "flights", 1200.0},
		{"Bob", "", 300.25},
		{},
		{"", "TOTAL", 1500.25},
	}, tabs[0].Values)
}

func TestWorkbookTabs_DoesNotMutateStore(t *testing.T) {
	store := testStore()
	before := store.Snapshot()

	tabs := WorkbookTabs(store)
	tabs[0].Values[1][0] = "Mallory"

	assert.Equal(t, before, store.Snapshot())
}

func TestWriteCSV_ActiveSheetRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testStore().Rows("Trip")))

	assert.Equal(t, "Who,Why,How Much\nAlice,flights,1200\nBob,,300.25\n", buf.String())
}

func TestWriteCSV_QuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testStore().Rows("Food")))

	assert.Equal(t, "Who,Why,How Much\nCarol,\"pizza, large\",18\n", buf.String())
}

func TestWriteCSV_EmptySheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "Who,Why,How Much\n", buf.String())
}

func TestFilenames(t *testing.T) {
	at := time.Date(2026, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))

	assert.Equal(t, "workshop_payments_2026-03-10.xlsx", XLSXFilename(at))
	assert.Equal(t, "Trip.csv", CSVFilename("Trip"))
	assert.Equal(t, "Food_Drinks.csv", CSVFilename("Food/Drinks"))
}
