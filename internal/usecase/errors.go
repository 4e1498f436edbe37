package usecase

import (
	"fmt"
	"strings"

	"hotel-reservation/internal/data/entity"
)

// Typed domain errors. Handlers match them with errors.As to pick a
// stable response code; anything else is an infrastructure error.

type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// RoomNotAvailableError carries the confirmations of the reservations
// that block the requested range.
type RoomNotAvailableError struct {
	RoomNumber    string
	CheckIn       string
	CheckOut      string
	ConflictsWith []string
}

func (e *RoomNotAvailableError) Error() string {
	msg := fmt.Sprintf("room %s is not available from %s to %s", e.RoomNumber, e.CheckIn, e.CheckOut)
	if len(e.ConflictsWith) > 0 {
		msg += fmt.Sprintf(" (conflicts with %s)", strings.Join(e.ConflictsWith, ", "))
	}
	return msg
}

// InvalidStateError reports an illegal lifecycle transition.
type InvalidStateError struct {
	Current     entity.ReservationStatus
	Operation   string
	ValidStates []entity.ReservationStatus
}

func (e *InvalidStateError) Error() string {
	states := make([]string, len(e.ValidStates))
	for i, s := range e.ValidStates {
		states[i] = string(s)
	}
	return fmt.Sprintf("cannot %s reservation in status %s, requires one of: %s",
		e.Operation, e.Current, strings.Join(states, ", "))
}

type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}
