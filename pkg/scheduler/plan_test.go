package scheduler

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/roster-api-go/pkg/models"
)

func infeasibleInput() ([]models.Shift, []models.Worker) {
	shifts := []models.Shift{
		{ID: "s1", Days: models.Days{models.Monday}},
		{ID: "s2", Days: models.Days{models.Monday}},
	}
	return shifts, []models.Worker{models.NewWorker("Ana", nil)}
}

func TestPlan_ConstrainedSucceeds(t *testing.T) {
	shifts := []models.Shift{{ID: "s1", Days: models.Days{models.Monday}}}
	workers := []models.Worker{models.NewWorker("Ana", nil)}

	called := false
	res, err := NewScheduler(shifts, workers, WithSeed(4)).Plan(func(error) bool {
		called = true
		return true
	})

	require.NoError(t, err)
	assert.False(t, called, "decider must not be consulted when preferences fit")
	assert.False(t, res.UsedFallback)
	assert.Equal(t, int64(4), res.Seed)
	assert.Equal(t, []string{"Ana"}, res.Table.Slot("s1", models.Monday))
}

func TestPlan_FallbackAccepted(t *testing.T) {
	shifts, workers := infeasibleInput()

	var cause error
	res, err := NewScheduler(shifts, workers, WithSeed(1)).Plan(func(err error) bool {
		cause = err
		return true
	})

	require.NoError(t, err)
	require.ErrorIs(t, cause, ErrInsufficientWorkers)
	assert.True(t, res.UsedFallback)
	assert.Equal(t, []string{"Ana"}, res.Table.Slot("s1", models.Monday))
	assert.Equal(t, []string{"Ana"}, res.Table.Slot("s2", models.Monday))
}

func TestPlan_FallbackDeclined(t *testing.T) {
	shifts, workers := infeasibleInput()

	res, err := NewScheduler(shifts, workers, WithSeed(1)).Plan(NeverFallback)

	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, IsInfeasible(err))

	var assignErr *AssignError
	require.True(t, errors.As(err, &assignErr))
	assert.Equal(t, models.ConflictReason{
		ShiftID: "s2",
		Day:     "Monday",
		Reason:  ErrInsufficientWorkers.Error(),
	}, assignErr.Conflict())
}

func TestPlan_NilDeciderAborts(t *testing.T) {
	shifts, workers := infeasibleInput()

	_, err := NewScheduler(shifts, workers).Plan(nil)
	assert.True(t, IsInfeasible(err))
}

func TestPlan_FatalIsNeverDowngraded(t *testing.T) {
	shifts := []models.Shift{{ID: "s1", Days: models.Days{models.Monday}}}

	called := false
	_, err := NewScheduler(shifts, nil).Plan(func(error) bool {
		called = true
		return true
	})

	assert.True(t, IsFatal(err))
	assert.False(t, called)
}

func TestPlan_LogsFallback(t *testing.T) {
	shifts, workers := infeasibleInput()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewScheduler(shifts, workers, WithSeed(2), WithLogger(logger)).Plan(AlwaysFallback)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "preferences cannot be satisfied")
	assert.Contains(t, buf.String(), "generating schedule without worker preferences")
}

func TestCheckMinimumWorkers(t *testing.T) {
	assert.NoError(t, CheckMinimumWorkers(10, 5))
	assert.NoError(t, CheckMinimumWorkers(8, 5))
	assert.NoError(t, CheckMinimumWorkers(2, 1))
	assert.NoError(t, CheckMinimumWorkers(4, 4))

	assert.ErrorIs(t, CheckMinimumWorkers(5, 10), ErrNotEnoughWorkers)
	assert.ErrorIs(t, CheckMinimumWorkers(1, 2), ErrNotEnoughWorkers)

	err := CheckMinimumWorkers(3, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotEnoughWorkers)
}
