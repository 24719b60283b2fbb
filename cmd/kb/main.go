package main

import (
	"context"
	"fmt"
	"os"

	"task-board/internal/api"
	"task-board/internal/cli"
	"task-board/internal/config"
	"task-board/internal/eventlog"
	"task-board/internal/validation"
)

func main() {
	root := cli.NewRootCommand(openBoard)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openBoard creates the repository for the configured environment, loads
// the event log from it and builds the API over it.
func openBoard(ctx context.Context, cfg *config.Config) (api.BoardAPI, func() error, error) {
	repo, err := config.NewRepositoryFactory(cfg).CreateRepository()
	if err != nil {
		return nil, nil, fmt.Errorf("error creating repository: %w", err)
	}

	store, err := eventlog.Open(ctx, repo)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}

	board := api.New(store, api.WithValidator(validation.NewBoardValidatorWithConfig(cfg)))
	return board, repo.Close, nil
}
