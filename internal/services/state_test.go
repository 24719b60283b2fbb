package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-board/internal/domain"
)

func ev(id, content, column, ts string) domain.MovementEvent {
	return domain.MovementEvent{ID: id, Content: content, Column: column, Problem: "p", Result: "r", Timestamp: ts}
}

func TestLatestByTask_LastWriteWins(t *testing.T) {
	// Timestamps deliberately run backwards; append order decides.
	log := []domain.MovementEvent{
		ev("1", "a", "To Do", "2024-01-01 12:00:00"),
		ev("1", "a", "In Progress", "2024-01-01 11:00:00"),
		ev("1", "a", "Done", "2024-01-01 10:00:00"),
	}

	latest := LatestByTask(log)
	require.Len(t, latest, 1)
	assert.Equal(t, "Done", latest["1"].Column)
}

func TestLatestByTask_OneEntryPerID(t *testing.T) {
	log := []domain.MovementEvent{
		ev("1", "a", "To Do", "2024-01-01 10:00:00"),
		ev("2", "b", "To Do", "2024-01-01 10:00:01"),
		ev("1", "a", "In Progress", "2024-01-01 10:00:02"),
	}

	latest := LatestByTask(log)
	assert.Len(t, latest, 2)
	assert.Equal(t, "In Progress", latest["1"].Column)
	assert.Equal(t, "To Do", latest["2"].Column)
}

func TestLatestByTask_Idempotent(t *testing.T) {
	log := []domain.MovementEvent{
		ev("1", "a", "To Do", "2024-01-01 10:00:00"),
		ev("1", "a", "In Progress", "2024-01-01 10:01:00"),
	}

	first := LatestByTask(log)
	assert.Equal(t, first, LatestByTask(log))

	// Re-appending the latest event grows the log but not the state
	withDuplicate := append(append([]domain.MovementEvent{}, log...), log[1])
	assert.Equal(t, first, LatestByTask(withDuplicate))
	assert.Len(t, log, 2)
}

func TestLatestByTask_Empty(t *testing.T) {
	assert.Empty(t, LatestByTask(nil))
}

func TestBuildBoard(t *testing.T) {
	log := []domain.MovementEvent{
		ev("1", "first", "To Do", "2024-01-01 10:00:00"),
		ev("2", "second", "To Do", "2024-01-01 10:00:01"),
		ev("3", "third", "To Do", "2024-01-01 10:00:02"),
		ev("2", "second", "In Progress", "2024-01-01 10:00:03"),
		ev("1", "first", "Done", "2024-01-01 10:00:04"),
		ev("4", "stray", "Archived", "2024-01-01 10:00:05"),
	}

	board := BuildBoard(log)
	require.Len(t, board.Columns, 3)
	assert.Equal(t, domain.ColumnToDo, board.Columns[0].Column)
	assert.Equal(t, domain.ColumnInProgress, board.Columns[1].Column)
	assert.Equal(t, domain.ColumnDone, board.Columns[2].Column)

	todo := board.Column(domain.ColumnToDo)
	require.Len(t, todo, 1)
	assert.Equal(t, "3", todo[0].ID)

	inProgress := board.Column(domain.ColumnInProgress)
	require.Len(t, inProgress, 1)
	assert.Equal(t, "second", inProgress[0].Content)
	assert.Equal(t, "2024-01-01 10:00:03", inProgress[0].Since)

	done := board.Column(domain.ColumnDone)
	require.Len(t, done, 1)
	assert.Equal(t, "1", done[0].ID)
	assert.Equal(t, "p", done[0].Problem)
	assert.Equal(t, "r", done[0].Result)
}

func TestBuildBoard_FirstAppearanceOrder(t *testing.T) {
	log := []domain.MovementEvent{
		ev("1", "a", "To Do", "2024-01-01 10:00:00"),
		ev("2", "b", "To Do", "2024-01-01 10:00:01"),
		ev("1", "a", "In Progress", "2024-01-01 10:00:02"),
		ev("1", "a", "To Do", "2024-01-01 10:00:03"),
	}

	todo := BuildBoard(log).Column(domain.ColumnToDo)
	require.Len(t, todo, 2)
	assert.Equal(t, "1", todo[0].ID)
	assert.Equal(t, "2", todo[1].ID)
}

func TestBuildBoard_Empty(t *testing.T) {
	board := BuildBoard(nil)
	require.Len(t, board.Columns, 3)
	for _, col := range board.Columns {
		assert.NotNil(t, col.Tasks)
		assert.Empty(t, col.Tasks)
	}
}
