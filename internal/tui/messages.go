package tui

import (
	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/model"
)

// datasetLoadedMsg carries the result of reading a dataset file.
type datasetLoadedMsg struct {
	err    error
	path   string
	raw    model.RawWorkbook
	ticket app.IngestTicket
}
