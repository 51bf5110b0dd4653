package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/workshop-payments/internal/app"
	"github.com/Veraticus/workshop-payments/internal/config"
	"github.com/Veraticus/workshop-payments/internal/workbook"
)

// loadDataset reads and decodes a dataset file off the update loop. The
// session is not touched until the result comes back as a message.
func loadDataset(ctx context.Context, ticket app.IngestTicket, path string) tea.Cmd {
	return func() tea.Msg {
		path = config.ExpandPath(path)
		raw, err := workbook.DecodeFile(ctx, path)
		return datasetLoadedMsg{
			ticket: ticket,
			path:   path,
			raw:    raw,
			err:    err,
		}
	}
}
