package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-board/internal/domain"
	apperrors "task-board/internal/errors"
)

// stubLog is a LogReader returning a fixed log
type stubLog struct {
	events []domain.MovementEvent
	err    error
	reads  int
}

func (s *stubLog) ReadAll(ctx context.Context) ([]domain.MovementEvent, error) {
	s.reads++
	return s.events, s.err
}

func newStubLog() *stubLog {
	return &stubLog{events: []domain.MovementEvent{
		ev("1", "a", "To Do", "2024-03-09 08:00:00"),
		ev("1", "a", "In Progress", "2024-03-09 09:00:00"),
		ev("2", "b", "In Progress", "2024-03-09 09:30:00"),
		ev("1", "a", "Done", "2024-03-09 10:00:00"),
	}}
}

func TestReportingService_CurrentBoard(t *testing.T) {
	svc := NewReportingService(newStubLog())

	board, err := svc.CurrentBoard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, board.Column(domain.ColumnToDo))
	assert.Len(t, board.Column(domain.ColumnInProgress), 1)
	assert.Len(t, board.Column(domain.ColumnDone), 1)
}

func TestReportingService_TaskState(t *testing.T) {
	svc := NewReportingService(newStubLog())

	state, err := svc.TaskState(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Done", state.Column)

	_, err = svc.TaskState(context.Background(), "42")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestReportingService_TimeTracking(t *testing.T) {
	svc := NewReportingService(newStubLog())

	records, err := svc.TimeTracking(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "01:00:00", records[0].Formatted())
	assert.Equal(t, "00:00:00", records[1].Formatted())
}

func TestReportingService_DailyReport(t *testing.T) {
	svc := NewReportingService(newStubLog())
	ref := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	groups, err := svc.DailyDigest(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"a", "b"}, groups[0].Titles)

	report, err := svc.DailyReport(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "- p\n\t- a\n\t- b\n\n", report)
}

func TestReportingService_ReadsLogOnEveryCall(t *testing.T) {
	log := newStubLog()
	svc := NewReportingService(log)

	_, _ = svc.CurrentBoard(context.Background())
	log.events = append(log.events, ev("3", "c", "To Do", "2024-03-09 11:00:00"))

	board, err := svc.CurrentBoard(context.Background())
	require.NoError(t, err)
	assert.Len(t, board.Column(domain.ColumnToDo), 1)
	assert.Equal(t, 2, log.reads)
}

func TestReportingService_PropagatesReadErrors(t *testing.T) {
	readErr := apperrors.NewPersistenceError("read taskHistory", errors.New("boom"))
	svc := NewReportingService(&stubLog{err: readErr})
	ctx := context.Background()

	_, err := svc.CurrentBoard(ctx)
	assert.ErrorIs(t, err, readErr)
	_, err = svc.TaskStates(ctx)
	assert.ErrorIs(t, err, readErr)
	_, err = svc.TimeTracking(ctx)
	assert.ErrorIs(t, err, readErr)
	_, err = svc.DailyReport(ctx, time.Now())
	assert.ErrorIs(t, err, readErr)
}

func TestNewServiceContainer(t *testing.T) {
	container := NewServiceContainer(newStubLog())
	assert.NotNil(t, container.ReportingService)
}
