// Package api is the surface the board shell calls: registering problems,
// creating and moving tasks, export and import, and reports.
package api

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"task-board/internal/domain"
	"task-board/internal/errors"
	"task-board/internal/eventlog"
	"task-board/internal/services"
	"task-board/internal/validation"
)

// ImportSummary describes what an import replaced the board with.
type ImportSummary struct {
	Events   int `json:"events"`
	Problems int `json:"problems"`
}

// MoveResult is the outcome of a move request. Moved is false when the task
// was already in the target column and nothing was appended.
type MoveResult struct {
	Event domain.MovementEvent `json:"event"`
	Moved bool                 `json:"moved"`
}

// BoardAPI defines every operation the board shell can request.
type BoardAPI interface {
	// ========== Problems ==========

	// RegisterProblem adds a problem tasks can be classified under
	RegisterProblem(ctx context.Context, name, expectedResult string) (domain.Problem, error)

	// ListProblems returns the registered problems in registration order
	ListProblems(ctx context.Context) ([]domain.Problem, error)

	// ========== Tasks ==========

	// CreateTask places a new task in "To Do" and returns its first event
	CreateTask(ctx context.Context, title, problem string) (domain.MovementEvent, error)

	// MoveTask moves an existing task to another column
	MoveTask(ctx context.Context, id, column string) (MoveResult, error)

	// Board returns every task in its current column
	Board(ctx context.Context) (services.Board, error)

	// History returns the full movement log in append order
	History(ctx context.Context) ([]domain.MovementEvent, error)

	// ========== Export and import ==========

	// ExportCSV renders the full history export
	ExportCSV(ctx context.Context) (string, error)

	// ImportCSV replaces the log and registry with the contents of a history export
	ImportCSV(ctx context.Context, text string) (ImportSummary, error)

	// ImportFile reads a history export from disk and imports it
	ImportFile(ctx context.Context, path string) (ImportSummary, error)

	// ========== Reports ==========

	// TimeTracking returns the time each task spent in progress
	TimeTracking(ctx context.Context) ([]domain.DurationRecord, error)

	// ExportTimeTracking renders the time-tracking export
	ExportTimeTracking(ctx context.Context) (string, error)

	// DailyDigest returns yesterday's activity relative to ref, grouped by problem
	DailyDigest(ctx context.Context, ref time.Time) ([]domain.DigestGroup, error)

	// DailyReport renders yesterday's activity relative to ref
	DailyReport(ctx context.Context, ref time.Time) (string, error)
}

// Option configures the API.
type Option func(*boardAPI)

// WithClock sets the clock used to assign task ids.
func WithClock(now func() time.Time) Option {
	return func(a *boardAPI) {
		a.now = now
	}
}

// WithValidator replaces the default field validator.
func WithValidator(v *validation.BoardValidator) Option {
	return func(a *boardAPI) {
		a.validator = v
	}
}

// WithFileReader replaces the function used to read import files.
func WithFileReader(read func(path string) ([]byte, error)) Option {
	return func(a *boardAPI) {
		a.readFile = read
	}
}

type boardAPI struct {
	store     *eventlog.Store
	reporting services.ReportingService
	validator *validation.BoardValidator
	now       func() time.Time
	readFile  func(path string) ([]byte, error)
}

// New creates a BoardAPI over an opened event log.
func New(store *eventlog.Store, opts ...Option) BoardAPI {
	a := &boardAPI{
		store:     store,
		reporting: services.NewServiceContainer(store).ReportingService,
		validator: validation.NewBoardValidator(),
		now:       time.Now,
		readFile:  os.ReadFile,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *boardAPI) RegisterProblem(ctx context.Context, name, expectedResult string) (domain.Problem, error) {
	problem, err := a.validator.ValidateProblem(name, expectedResult)
	if err != nil {
		return domain.Problem{}, toAppError(err)
	}

	if err := a.store.RegisterProblem(ctx, problem); err != nil {
		return domain.Problem{}, err
	}
	return problem, nil
}

func (a *boardAPI) ListProblems(ctx context.Context) ([]domain.Problem, error) {
	return a.store.Registry().List(), nil
}

// CreateTask assigns the task id from the creation instant in milliseconds.
// Two tasks created within the same millisecond share an id.
func (a *boardAPI) CreateTask(ctx context.Context, title, problem string) (domain.MovementEvent, error) {
	title, problem, err := a.validator.ValidateTaskCreation(title, problem)
	if err != nil {
		return domain.MovementEvent{}, toAppError(err)
	}

	if reg := a.store.Registry(); !reg.Has(problem) {
		return domain.MovementEvent{}, unregisteredProblem(problem, reg.Names())
	}

	id := strconv.FormatInt(a.now().UnixMilli(), 10)
	return a.store.AppendMovement(ctx, id, title, domain.ColumnToDo, problem)
}

// MoveTask keeps the task's title and problem from its current state. The
// result is snapshotted again from the registry.
func (a *boardAPI) MoveTask(ctx context.Context, id, column string) (MoveResult, error) {
	target, err := a.validator.ValidateMove(id, column)
	if err != nil {
		return MoveResult{}, toAppError(err)
	}

	current, err := a.reporting.TaskState(ctx, id)
	if err != nil {
		return MoveResult{}, err
	}

	if current.ColumnValue() == target {
		return MoveResult{Event: current, Moved: false}, nil
	}

	event, err := a.store.AppendMovement(ctx, id, current.Content, target, current.Problem)
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Event: event, Moved: true}, nil
}

func (a *boardAPI) Board(ctx context.Context) (services.Board, error) {
	return a.reporting.CurrentBoard(ctx)
}

func (a *boardAPI) History(ctx context.Context) ([]domain.MovementEvent, error) {
	return a.store.ReadAll(ctx)
}

func (a *boardAPI) TimeTracking(ctx context.Context) ([]domain.DurationRecord, error) {
	return a.reporting.TimeTracking(ctx)
}

func (a *boardAPI) DailyDigest(ctx context.Context, ref time.Time) ([]domain.DigestGroup, error) {
	return a.reporting.DailyDigest(ctx, ref)
}

func (a *boardAPI) DailyReport(ctx context.Context, ref time.Time) (string, error) {
	return a.reporting.DailyReport(ctx, ref)
}

// toAppError converts field validation failures into a validation AppError.
func toAppError(err error) error {
	if ve, ok := validation.AsValidationError(err); ok {
		return ve.ToAppError()
	}
	return err
}

// unregisteredProblem names the problems a task may be filed under.
func unregisteredProblem(problem string, registered []string) error {
	if len(registered) == 0 {
		return errors.NewInvalidInputError("problem", problem, "register a problem first")
	}
	return errors.NewInvalidInputError("problem", problem, "select a registered problem ("+strings.Join(registered, ", ")+")")
}
