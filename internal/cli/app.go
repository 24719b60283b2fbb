package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"task-board/internal/api"
	"task-board/internal/config"
	"task-board/internal/domain"
)

// App represents the main CLI application
type App struct {
	api    api.BoardAPI
	config *config.Config
	out    io.Writer
	now    func() time.Time
}

// NewApp creates a CLI application over api with default configuration
func NewApp(api api.BoardAPI) *App {
	return NewAppWithConfig(api, config.NewConfig())
}

// NewAppWithConfig creates a CLI application with the given configuration
func NewAppWithConfig(api api.BoardAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		api:    api,
		config: cfg,
		out:    os.Stdout,
		now:    time.Now,
	}
}

// WithOutput redirects command output to w
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithClock sets the clock used for the daily report reference date
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// writeReport writes content to the configured reports directory and
// returns the path written.
func (a *App) writeReport(filename, content string) (string, error) {
	path := a.config.ReportPath(filename)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create reports directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// parseColumnArg accepts the column names as shown on the board as well as
// the shorthands todo, doing and done. Anything else is passed through for
// validation to reject.
func parseColumnArg(s string) string {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "to do", "todo", "to-do":
		return string(domain.ColumnToDo)
	case "in progress", "in-progress", "inprogress", "doing":
		return string(domain.ColumnInProgress)
	case "done":
		return string(domain.ColumnDone)
	}
	return s
}
