package cli

import (
	"context"
	"strings"

	"task-board/internal/api"
	"task-board/internal/errors"
)

// TaskCommand handles the task add and move commands
type TaskCommand struct {
	app *App
	api api.BoardAPI
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{app: app, api: app.api}
}

// Add creates a task in "To Do". All args are joined into the title.
func (c *TaskCommand) Add(ctx context.Context, problem string, args []string) error {
	title := strings.Join(args, " ")

	event, err := c.api.CreateTask(ctx, title, problem)
	if err != nil {
		return err
	}

	c.app.printf("Created task %s: %s\n", event.ID, event.Content)
	return nil
}

// Move moves the task named by args[0] to the column named by the
// remaining args.
func (c *TaskCommand) Move(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "task move", "usage: kb task move <id> <column>")
	}

	column := parseColumnArg(strings.Join(args[1:], " "))
	result, err := c.api.MoveTask(ctx, args[0], column)
	if err != nil {
		return err
	}

	if !result.Moved {
		c.app.printf("Task %s is already in %s\n", result.Event.ID, result.Event.Column)
		return nil
	}
	c.app.printf("Moved task %s to %s\n", result.Event.ID, result.Event.Column)
	return nil
}
