package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to Status
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to Status
	}{
		{StatusPending, StatusCompleted},
		{StatusConfirmed, StatusPending},
		{StatusConfirmed, StatusRejected},
		{StatusRejected, StatusConfirmed},
		{StatusRejected, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusConfirmed},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusPending.HoldsSeats())
	assert.False(t, StatusConfirmed.HoldsSeats())
	assert.False(t, StatusRejected.HoldsSeats())

	assert.True(t, StatusConfirmed.OccupiesCapacity())
	assert.True(t, StatusCompleted.OccupiesCapacity())
	assert.False(t, StatusPending.OccupiesCapacity())
	assert.False(t, StatusCancelled.OccupiesCapacity())

	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, Status("EXPIRED").IsValid())
	assert.False(t, Status("").IsValid())
}
