package cli

import (
	"context"

	"task-board/internal/api"
)

// TransferCommand handles history export and import
type TransferCommand struct {
	app *App
	api api.BoardAPI
}

// NewTransferCommand creates a new transfer command handler
func NewTransferCommand(app *App) *TransferCommand {
	return &TransferCommand{app: app, api: app.api}
}

// Export writes the history export to the reports directory, or to the
// command output when toStdout is set.
func (c *TransferCommand) Export(ctx context.Context, toStdout bool) error {
	text, err := c.api.ExportCSV(ctx)
	if err != nil {
		return err
	}

	if toStdout {
		c.app.printf("%s", text)
		return nil
	}

	path, err := c.app.writeReport(c.app.config.Reports.HistoryExportFile, text)
	if err != nil {
		return err
	}
	c.app.printf("History exported to %s\n", path)
	return nil
}

// Import replaces the board with the history export at path
func (c *TransferCommand) Import(ctx context.Context, path string) error {
	summary, err := c.api.ImportFile(ctx, path)
	if err != nil {
		return err
	}

	c.app.printf("Imported %d events and %d problems from %s\n", summary.Events, summary.Problems, path)
	return nil
}
