package domain

import "errors"

// ErrIllegalTransition возвращается при попытке недопустимого перехода статуса
var ErrIllegalTransition = errors.New("domain: illegal status transition")

// allowedTransitions единственная точка, определяющая граф переходов статусов:
// pending -> confirmed -> completed, отмена возможна из pending и confirmed.
// Конечные статусы (cancelled, completed) переходов не имеют.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether moving from s to target is a legal
// lifecycle transition
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition out of s is permitted
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IsValid returns true if s is one of the known lifecycle statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}
