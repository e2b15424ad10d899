package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
		assert.True(t, s.IsValid(), "status %s", s)
	}

	assert.False(t, BookingStatus("archived").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingStatus_TerminalStatesHaveNoTransitions(t *testing.T) {
	targets := []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

	for _, from := range []BookingStatus{StatusCancelled, StatusCompleted} {
		for _, to := range targets {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}
