package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-board/internal/domain"
	"task-board/internal/errors"
)

func TestRegistry_Register(t *testing.T) {
	r := New()

	require.NoError(t, r.Register(domain.NewProblem("Slow builds", "Builds under 5 minutes")))
	require.NoError(t, r.Register(domain.NewProblem("Flaky tests", "Green CI")))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"Slow builds", "Flaky tests"}, r.Names())
	assert.Equal(t, "Green CI", r.ExpectedResult("Flaky tests"))
}

func TestRegistry_RegisterDuplicateKeepsFirst(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(domain.NewProblem("Slow builds", "first")))

	err := r.Register(domain.NewProblem("Slow builds", "second"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	assert.Equal(t, "first", r.ExpectedResult("Slow builds"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_LookupMissing(t *testing.T) {
	r := New()

	_, ok := r.Lookup("nothing")
	assert.False(t, ok)
	assert.Equal(t, "", r.ExpectedResult("nothing"))
}

func TestRegistry_ZeroValue(t *testing.T) {
	var r Registry

	assert.False(t, r.Has("x"))
	require.NoError(t, r.Register(domain.NewProblem("x", "y")))
	assert.Equal(t, "y", r.ExpectedResult("x"))
}

func TestFromEvents_FirstRowWins(t *testing.T) {
	events := []domain.MovementEvent{
		{ID: "1", Content: "a", Column: "To Do", Problem: "Outage", Result: "Uptime restored"},
		{ID: "2", Content: "b", Column: "To Do", Problem: "", Result: "ignored"},
		{ID: "1", Content: "a", Column: "Done", Problem: "Outage", Result: "changed later"},
		{ID: "3", Content: "c", Column: "To Do", Problem: "Billing"},
	}

	r := FromEvents(events)

	assert.Equal(t, []domain.Problem{
		{Problem: "Outage", ExpectedResult: "Uptime restored"},
		{Problem: "Billing", ExpectedResult: ""},
	}, r.List())
}

func TestFromEvents_Empty(t *testing.T) {
	r := FromEvents(nil)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.List())
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	r := FromProblems([]domain.Problem{{Problem: "a", ExpectedResult: "1"}})
	c := r.Clone()

	require.NoError(t, c.Register(domain.NewProblem("b", "2")))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 2, c.Len())
}

func TestRegistry_ListReturnsCopy(t *testing.T) {
	r := FromProblems([]domain.Problem{{Problem: "a", ExpectedResult: "1"}})
	list := r.List()
	list[0].ExpectedResult = "mutated"

	assert.Equal(t, "1", r.ExpectedResult("a"))
}
