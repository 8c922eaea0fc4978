package statemachine

import (
	"testing"

	"campus-cravings-api/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []Transition{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusConfirmed, models.StatusPreparing},
		{models.StatusConfirmed, models.StatusCancelled},
		{models.StatusPreparing, models.StatusReady},
		{models.StatusPreparing, models.StatusCancelled},
		{models.StatusReady, models.StatusCompleted},
	}
	for _, tr := range allowed {
		assert.NoError(t, CanTransition(tr.From, tr.To), "%s -> %s", tr.From, tr.To)
	}

	rejected := []Transition{
		{models.StatusPending, models.StatusReady},
		{models.StatusPending, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusCompleted},
		{models.StatusReady, models.StatusCancelled},
		{models.StatusCompleted, models.StatusCancelled},
		{models.StatusCancelled, models.StatusPending},
		{models.StatusCompleted, models.StatusPending},
	}
	for _, tr := range rejected {
		assert.Error(t, CanTransition(tr.From, tr.To), "%s -> %s", tr.From, tr.To)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusCompleted))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusReady))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(models.StatusPending))
	assert.True(t, ValidStatus(models.StatusCancelled))
	assert.False(t, ValidStatus(models.OrderStatus("shipped")))
	assert.False(t, ValidStatus(models.OrderStatus("")))
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusConfirmed, models.StatusCancelled}, nexts)
	assert.Empty(t, ValidTransitionsFrom(models.StatusCompleted))
}
