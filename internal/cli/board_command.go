package cli

import (
	"context"

	"task-board/internal/api"
)

// BoardCommand prints the board and its movement history
type BoardCommand struct {
	app *App
	api api.BoardAPI
}

// NewBoardCommand creates a new board command handler
func NewBoardCommand(app *App) *BoardCommand {
	return &BoardCommand{app: app, api: app.api}
}

// Board prints every column with the tasks currently in it
func (c *BoardCommand) Board(ctx context.Context) error {
	board, err := c.api.Board(ctx)
	if err != nil {
		return err
	}

	for _, col := range board.Columns {
		c.app.printf("%s (%d)\n", col.Column, len(col.Tasks))
		for _, task := range col.Tasks {
			c.app.printf("  %s  %s [%s] since %s\n", task.ID, task.Content, task.Problem, task.Since)
		}
	}
	return nil
}

// History prints the movement log in append order
func (c *BoardCommand) History(ctx context.Context) error {
	events, err := c.api.History(ctx)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		c.app.printf("No history found\n")
		return nil
	}

	for _, e := range events {
		c.app.printf("%s  %s  %-11s  %s [%s]\n", e.Timestamp, e.ID, e.Column, e.Content, e.Problem)
	}
	return nil
}
