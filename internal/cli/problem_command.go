package cli

import (
	"context"

	"task-board/internal/api"
)

// ProblemCommand handles the problem add and list commands
type ProblemCommand struct {
	app *App
	api api.BoardAPI
}

// NewProblemCommand creates a new problem command handler
func NewProblemCommand(app *App) *ProblemCommand {
	return &ProblemCommand{app: app, api: app.api}
}

// Add registers a problem from args: the problem name followed by its
// expected result.
func (c *ProblemCommand) Add(ctx context.Context, args []string) error {
	name, result := "", ""
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		result = args[1]
	}

	problem, err := c.api.RegisterProblem(ctx, name, result)
	if err != nil {
		return err
	}

	c.app.printf("Registered problem: %s\n", problem.String())
	return nil
}

// List prints the registered problems in registration order
func (c *ProblemCommand) List(ctx context.Context) error {
	problems, err := c.api.ListProblems(ctx)
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		c.app.printf("No problems registered\n")
		return nil
	}

	for _, p := range problems {
		c.app.printf("%s: %s\n", p.Problem, p.ExpectedResult)
	}
	return nil
}
