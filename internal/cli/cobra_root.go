package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"task-board/internal/api"
	"task-board/internal/config"
)

// Opener opens the board described by cfg. The returned close function
// releases the underlying store.
type Opener func(ctx context.Context, cfg *config.Config) (api.BoardAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	open   Opener
	loader *config.Loader
	out    io.Writer
	now    func() time.Time

	app   *App
	close func() error
}

// RootOption configures the root command
type RootOption func(*RootCommand)

// WithRootOutput redirects command output to w
func WithRootOutput(w io.Writer) RootOption {
	return func(r *RootCommand) {
		r.out = w
	}
}

// WithRootClock sets the clock commands use as "now"
func WithRootClock(now func() time.Time) RootOption {
	return func(r *RootCommand) {
		r.now = now
	}
}

// WithLoader replaces the configuration loader
func WithLoader(loader *config.Loader) RootOption {
	return func(r *RootCommand) {
		r.loader = loader
	}
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(open Opener, opts ...RootOption) *RootCommand {
	root := &RootCommand{
		open:   open,
		loader: config.NewLoader(),
		out:    os.Stdout,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "kb",
		Short: "A kanban board that tracks time spent per task",
		Long: `Task board (kb) keeps a three column kanban board (To Do, In Progress, Done).
Tasks are classified under registered problems and every move is recorded,
so the board can report how long each task spent in progress and what was
worked on yesterday.

EXAMPLES:
  kb problem add "Slow builds" "Builds under 5 minutes"
  kb task add -p "Slow builds" Cache module downloads
  kb task move 1709978400000 doing
  kb board
  kb time-report
  kb daily-report --date 2024-03-10
  kb export --stdout > kanban_tasks.csv
  kb import kanban_tasks.csv
  kb serve --addr 127.0.0.1:8080

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  KB_CONFIG                    Config file (default: ~/.kb/config.yaml)
  KB_DB_DIR                    Database directory (default: ~/.kb)
  KB_DB_FILENAME               Database filename (default: kb.db)
  KB_REPORTS_DIR               Directory reports are written to (default: .)
  KB_SERVER_ADDR               HTTP listen address (default: 127.0.0.1:8080)
  KB_ENV                       development, testing or production
  KB_APP_TIMEOUT               Command timeout (default: 60s)
  KB_DEBUG                     Print debug output to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}
	root.cmd.SetOut(root.out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the board afterwards
func (r *RootCommand) Execute() error {
	return r.ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the root command with args
func (r *RootCommand) ExecuteArgs(args []string) error {
	r.cmd.SetArgs(args)
	err := r.cmd.Execute()

	if r.close != nil {
		if closeErr := r.close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close board: %w", closeErr)
		}
		r.close = nil
	}
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides KB_CONFIG)")

	// Storage configuration
	flags.String("db-dir", "", "Database directory (overrides KB_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides KB_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides KB_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides KB_DB_WRITE_TIMEOUT)")

	// Reports configuration
	flags.String("reports-dir", "", "Directory reports are written to (overrides KB_REPORTS_DIR)")

	// Application configuration
	flags.String("env", "", "Environment (overrides KB_ENV)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides KB_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides KB_APP_VERBOSE)")
}

// overridesFromFlags collects the flags the user set on the command line.
func overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	o := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	o.ConfigFile = stringFlag("config")
	o.DBDir = stringFlag("db-dir")
	o.DBFilename = stringFlag("db-filename")
	o.DBQueryTimeout = durationFlag("db-query-timeout")
	o.DBWriteTimeout = durationFlag("db-write-timeout")
	o.ReportsDir = stringFlag("reports-dir")
	o.Environment = stringFlag("env")
	o.Timeout = durationFlag("app-timeout")
	if flags.Lookup("addr") != nil {
		o.ServerAddr = stringFlag("addr")
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}

	return o
}

// setup loads the configuration and opens the board before a subcommand runs
func (r *RootCommand) setup(cmd *cobra.Command) error {
	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(cmd))
	if err != nil {
		return err
	}
	if cfg.Application.Verbose {
		os.Setenv("KB_DEBUG", "1")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Application.Timeout)
	defer cancel()

	board, closeFn, err := r.open(ctx, cfg)
	if err != nil {
		return err
	}

	r.close = closeFn
	r.app = NewAppWithConfig(board, cfg).WithOutput(r.out).WithClock(r.now)
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app != nil && r.app.config.Application.Timeout > 0 {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second
}

// run executes fn with a context bounded by the application timeout
func (r *RootCommand) run(fn func(ctx context.Context, app *App) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
	defer cancel()
	return fn(ctx, r.app)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Problem commands
	problemCmd := &cobra.Command{
		Use:   "problem",
		Short: "Manage the problems tasks are classified under",
	}
	problemCmd.AddCommand(
		&cobra.Command{
			Use:   "add <problem> <expected result>",
			Short: "Register a problem",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.run(func(ctx context.Context, app *App) error {
					return NewProblemCommand(app).Add(ctx, args)
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List registered problems",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.run(func(ctx context.Context, app *App) error {
					return NewProblemCommand(app).List(ctx)
				})
			},
		},
	)

	// Task commands
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Create and move tasks",
	}
	taskAddCmd := &cobra.Command{
		Use:   "add -p <problem> <title>",
		Short: "Create a task in To Do",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, _ := cmd.Flags().GetString("problem")
			return r.run(func(ctx context.Context, app *App) error {
				return NewTaskCommand(app).Add(ctx, problem, args)
			})
		},
	}
	taskAddCmd.Flags().StringP("problem", "p", "", "Registered problem the task belongs to")
	taskMoveCmd := &cobra.Command{
		Use:   "move <id> <column>",
		Short: "Move a task to another column",
		Long: `Move a task to another column.

Columns: "To Do", "In Progress", "Done" or the shorthands todo, doing, done.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(func(ctx context.Context, app *App) error {
				return NewTaskCommand(app).Move(ctx, args)
			})
		},
	}
	taskCmd.AddCommand(taskAddCmd, taskMoveCmd)

	// Board and history
	boardCmd := &cobra.Command{
		Use:   "board",
		Short: "Show the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(func(ctx context.Context, app *App) error {
				return NewBoardCommand(app).Board(ctx)
			})
		},
	}
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show every recorded move",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(func(ctx context.Context, app *App) error {
				return NewBoardCommand(app).History(ctx)
			})
		},
	}

	// Export and import
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the movement history as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toStdout, _ := cmd.Flags().GetBool("stdout")
			return r.run(func(ctx context.Context, app *App) error {
				return NewTransferCommand(app).Export(ctx, toStdout)
			})
		},
	}
	exportCmd.Flags().Bool("stdout", false, "Print the export instead of writing the file")
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the board with a history export",
		Long: `Replace the board with a history export.

The current history and problem registry are replaced. Rows without an id,
task or column are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(func(ctx context.Context, app *App) error {
				return NewTransferCommand(app).Import(ctx, args[0])
			})
		},
	}

	// Reports
	timeReportCmd := &cobra.Command{
		Use:   "time-report",
		Short: "Show time spent in progress per task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toStdout, _ := cmd.Flags().GetBool("stdout")
			return r.run(func(ctx context.Context, app *App) error {
				return NewReportCommand(app).TimeReport(ctx, toStdout)
			})
		},
	}
	timeReportCmd.Flags().Bool("stdout", false, "Print the CSV export instead of writing the file")
	dailyReportCmd := &cobra.Command{
		Use:   "daily-report",
		Short: "Show what was worked on yesterday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			toStdout, _ := cmd.Flags().GetBool("stdout")
			return r.run(func(ctx context.Context, app *App) error {
				return NewReportCommand(app).DailyReport(ctx, date, toStdout)
			})
		},
	}
	dailyReportCmd.Flags().String("date", "", "Report on the day before this date (YYYY-MM-DD)")
	dailyReportCmd.Flags().Bool("stdout", false, "Only print the report")

	// HTTP server
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewServeCommand(r.app).Execute(ctx)
		},
	}
	serveCmd.Flags().String("addr", "", "Listen address (overrides KB_SERVER_ADDR)")

	r.cmd.AddCommand(
		problemCmd,
		taskCmd,
		boardCmd,
		historyCmd,
		exportCmd,
		importCmd,
		timeReportCmd,
		dailyReportCmd,
		serveCmd,
	)
}
