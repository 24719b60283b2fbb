package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-board/internal/domain"
)

var digestRef = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func dg(id, content, column, problem, ts string) domain.MovementEvent {
	return domain.MovementEvent{ID: id, Content: content, Column: column, Problem: problem, Result: "r", Timestamp: ts}
}

func TestDigestWindow(t *testing.T) {
	start, end := DigestWindow(digestRef)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 9, 23, 59, 59, 999000000, time.UTC), end)
}

func TestDigestWindow_MonthBoundaryAndLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	ref := time.Date(2024, 3, 1, 0, 15, 0, 0, loc)

	start, end := DigestWindow(ref)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999000000, loc), end)
}

func TestGroupDigest_WindowBounds(t *testing.T) {
	log := []domain.MovementEvent{
		dg("1", "at start", "Done", "p", "2024-03-09 00:00:00"),
		dg("2", "at end", "Done", "p", "2024-03-09 23:59:59"),
		dg("3", "today", "Done", "p", "2024-03-10 00:00:00"),
		dg("4", "two days ago", "Done", "p", "2024-03-08 23:59:59"),
	}

	groups := GroupDigest(log, digestRef)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"at start", "at end"}, groups[0].Titles)
}

func TestGroupDigest_ColumnFilter(t *testing.T) {
	log := []domain.MovementEvent{
		dg("1", "created only", "To Do", "p", "2024-03-09 10:00:00"),
		dg("2", "working", "In Progress", "p", "2024-03-09 10:00:00"),
		dg("3", "finished", "Done", "p", "2024-03-09 10:00:00"),
		dg("4", "odd", "Archived", "p", "2024-03-09 10:00:00"),
	}

	groups := GroupDigest(log, digestRef)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"working", "finished"}, groups[0].Titles)
}

func TestGroupDigest_OrderAndSetSemantics(t *testing.T) {
	log := []domain.MovementEvent{
		dg("1", "alpha", "In Progress", "second problem", "2024-03-09 08:00:00"),
		dg("2", "beta", "In Progress", "first problem", "2024-03-09 09:00:00"),
		dg("1", "alpha", "Done", "second problem", "2024-03-09 10:00:00"),
		dg("3", "gamma", "Done", "second problem", "2024-03-09 11:00:00"),
		dg("2", "beta", "Done", "first problem", "2024-03-09 12:00:00"),
	}

	groups := GroupDigest(log, digestRef)
	require.Len(t, groups, 2)
	assert.Equal(t, "second problem", groups[0].Problem)
	assert.Equal(t, []string{"alpha", "gamma"}, groups[0].Titles)
	assert.Equal(t, "first problem", groups[1].Problem)
	assert.Equal(t, []string{"beta"}, groups[1].Titles)
}

func TestGroupDigest_SkipsUnparseableTimestamps(t *testing.T) {
	log := []domain.MovementEvent{
		dg("1", "broken", "Done", "p", "09/03/2024"),
	}
	assert.Empty(t, GroupDigest(log, digestRef))
}

func TestBuildDigest_Rendering(t *testing.T) {
	log := []domain.MovementEvent{
		dg("1", "Fix login", "In Progress", "Auth", "2024-03-09 08:00:00"),
		dg("2", "Add cache", "Done", "Perf", "2024-03-09 09:00:00"),
		dg("3", "Rotate keys", "Done", "Auth", "2024-03-09 10:00:00"),
	}

	expected := "- Auth\n\t- Fix login\n\t- Rotate keys\n\n- Perf\n\t- Add cache\n\n"
	assert.Equal(t, expected, BuildDigest(log, digestRef))
}

func TestBuildDigest_NoActivity(t *testing.T) {
	assert.Equal(t, NoActivityMessage, BuildDigest(nil, digestRef))
	assert.NotEmpty(t, NoActivityMessage)

	onlyToday := []domain.MovementEvent{dg("1", "a", "Done", "p", "2024-03-10 08:00:00")}
	assert.Equal(t, NoActivityMessage, BuildDigest(onlyToday, digestRef))
}
