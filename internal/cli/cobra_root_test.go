package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-board/internal/api"
	"task-board/internal/config"
	"task-board/internal/eventlog"
	"task-board/internal/repository"
)

// testClock returns successive instants one second apart
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	t := c.current
	c.current = c.current.Add(time.Second)
	return t
}

// testBoard is one board shared by every command run in a test
type testBoard struct {
	api     api.BoardAPI
	lastCfg *config.Config
	opened  int
	closed  int
}

func setupTestBoard(t *testing.T) *testBoard {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("application:\n  environment: testing\n"), 0644))
	t.Setenv("KB_CONFIG", configFile)

	clock := &testClock{current: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)}
	store, err := eventlog.Open(context.Background(), repository.NewMemoryStore(), eventlog.WithClock(clock.Now))
	require.NoError(t, err)

	return &testBoard{api: api.New(store, api.WithClock(clock.Now))}
}

func (b *testBoard) open(ctx context.Context, cfg *config.Config) (api.BoardAPI, func() error, error) {
	b.lastCfg = cfg
	b.opened++
	return b.api, func() error {
		b.closed++
		return nil
	}, nil
}

// run executes one kb invocation and returns its output
func (b *testBoard) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand(b.open,
		WithRootOutput(&out),
		WithRootClock(func() time.Time { return time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC) }),
	)
	err := root.ExecuteArgs(args)
	return out.String(), err
}

func (b *testBoard) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := b.run(t, args...)
	require.NoError(t, err)
	return out
}

func TestProblemCommands(t *testing.T) {
	board := setupTestBoard(t)

	out := board.mustRun(t, "problem", "list")
	assert.Equal(t, "No problems registered\n", out)

	out = board.mustRun(t, "problem", "add", "Slow builds", "Builds under 5 minutes")
	assert.Equal(t, "Registered problem: Slow builds\n", out)

	out = board.mustRun(t, "problem", "list")
	assert.Equal(t, "Slow builds: Builds under 5 minutes\n", out)

	_, err := board.run(t, "problem", "add", "Slow builds", "again")
	require.Error(t, err)

	_, err = board.run(t, "problem", "add", "", "result")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem is required")
}

func TestTaskCommands(t *testing.T) {
	board := setupTestBoard(t)
	board.mustRun(t, "problem", "add", "Slow builds", "Builds under 5 minutes")

	out := board.mustRun(t, "task", "add", "-p", "Slow builds", "Cache", "module", "downloads")
	assert.Equal(t, "Created task 1709978400000: Cache module downloads\n", out)

	out = board.mustRun(t, "task", "move", "1709978400000", "doing")
	assert.Equal(t, "Moved task 1709978400000 to In Progress\n", out)

	out = board.mustRun(t, "task", "move", "1709978400000", "In", "Progress")
	assert.Equal(t, "Task 1709978400000 is already in In Progress\n", out)

	out = board.mustRun(t, "board")
	assert.Contains(t, out, "To Do (0)\n")
	assert.Contains(t, out, "In Progress (1)\n")
	assert.Contains(t, out, "1709978400000  Cache module downloads [Slow builds]")

	out = board.mustRun(t, "history")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)

	t.Run("unregistered problem", func(t *testing.T) {
		_, err := board.run(t, "task", "add", "-p", "Unknown", "title")
		require.Error(t, err)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := board.run(t, "task", "move", "999", "done")
		require.Error(t, err)
		assert.Equal(t, "task not found: 999", err.Error())
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := board.run(t, "task", "move", "1709978400000", "Blocked")
		require.Error(t, err)
	})
}

func TestReportCommands(t *testing.T) {
	board := setupTestBoard(t)
	reportsDir := t.TempDir()

	board.mustRun(t, "problem", "add", "Slow builds", "Builds under 5 minutes")
	board.mustRun(t, "task", "add", "-p", "Slow builds", "Cache deps")
	board.mustRun(t, "task", "move", "1709978400000", "doing")
	board.mustRun(t, "task", "move", "1709978400000", "done")

	t.Run("daily report", func(t *testing.T) {
		out := board.mustRun(t, "daily-report", "--date", "2024-03-10", "--reports-dir", reportsDir)
		assert.Contains(t, out, "- Slow builds\n\t- Cache deps\n")

		data, err := os.ReadFile(filepath.Join(reportsDir, "daily_report.txt"))
		require.NoError(t, err)
		assert.Equal(t, "- Slow builds\n\t- Cache deps\n\n", string(data))
	})

	t.Run("daily report without activity", func(t *testing.T) {
		out := board.mustRun(t, "daily-report", "--date", "2024-03-20", "--stdout")
		assert.Equal(t, "No tasks were worked on yesterday.\n", out)
	})

	t.Run("daily report with bad date", func(t *testing.T) {
		_, err := board.run(t, "daily-report", "--date", "20/03/2024")
		require.Error(t, err)
	})

	t.Run("time report", func(t *testing.T) {
		out := board.mustRun(t, "time-report", "--reports-dir", reportsDir)
		assert.Contains(t, out, "00:00:01  1709978400000  Cache deps [Slow builds]")

		data, err := os.ReadFile(filepath.Join(reportsDir, "time_tracking.csv"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "idtask;task;situacaoproblema;resultado;tempogasto\n"))
	})
}

func TestTransferCommands(t *testing.T) {
	board := setupTestBoard(t)
	reportsDir := t.TempDir()

	board.mustRun(t, "problem", "add", "Slow builds", "Builds under 5 minutes")
	board.mustRun(t, "task", "add", "-p", "Slow builds", "Cache deps")

	out := board.mustRun(t, "export", "--stdout")
	assert.True(t, strings.HasPrefix(out, "ID;Problem;Task;Result;Timestamp;Column\n"))

	out = board.mustRun(t, "export", "--reports-dir", reportsDir)
	exportPath := filepath.Join(reportsDir, "kanban_tasks.csv")
	assert.Equal(t, "History exported to "+exportPath+"\n", out)
	assert.FileExists(t, exportPath)

	other := setupTestBoard(t)
	out = other.mustRun(t, "import", exportPath)
	assert.Equal(t, "Imported 1 events and 1 problems from "+exportPath+"\n", out)

	out = other.mustRun(t, "problem", "list")
	assert.Equal(t, "Slow builds: Builds under 5 minutes\n", out)

	_, err := other.run(t, "import", filepath.Join(reportsDir, "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, "Error importing CSV file.", err.Error())
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	board := setupTestBoard(t)
	dbDir := t.TempDir()

	board.mustRun(t, "problem", "list", "--db-dir", dbDir, "--db-filename", "other.db", "--app-timeout", "5s")

	require.NotNil(t, board.lastCfg)
	assert.Equal(t, dbDir, board.lastCfg.Storage.Dir)
	assert.Equal(t, "other.db", board.lastCfg.Storage.Filename)
	assert.Equal(t, 5*time.Second, board.lastCfg.Application.Timeout)
	assert.Equal(t, string(config.Testing), board.lastCfg.Application.Environment)
	assert.Equal(t, 1, board.opened)
	assert.Equal(t, 1, board.closed)
}

func TestRootCommand_UsageErrors(t *testing.T) {
	board := setupTestBoard(t)

	_, err := board.run(t, "problem", "add", "only one")
	require.Error(t, err)

	_, err = board.run(t, "task", "move", "1")
	require.Error(t, err)

	_, err = board.run(t, "nope")
	require.Error(t, err)
}

func TestParseColumnArg(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"todo", "To Do"},
		{"To Do", "To Do"},
		{"to-do", "To Do"},
		{"doing", "In Progress"},
		{"in  progress", "In Progress"},
		{"DONE", "Done"},
		{"Blocked", "Blocked"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseColumnArg(tt.input))
		})
	}
}
