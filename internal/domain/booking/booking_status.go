package booking

import (
	"fmt"

	"github.com/glambook/service-booking/pkg/domain"
)

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusDeclined   BookingStatus = "declined"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// validTransitions defines the state machine for booking status transitions.
// Each edge carries the set of actor roles allowed to request it. Admin may
// cancel from any non-terminal state.
var validTransitions = map[BookingStatus]map[BookingStatus][]ActorRole{
	StatusPending: {
		StatusConfirmed: {RoleArtist},
		StatusDeclined:  {RoleArtist},
		StatusCancelled: {RoleCustomer, RoleAdmin},
	},
	StatusConfirmed: {
		StatusInProgress: {RoleArtist, RoleAdmin},
		StatusCancelled:  {RoleArtist, RoleAdmin},
	},
	StatusInProgress: {
		StatusCompleted: {RoleArtist},
		StatusCancelled: {RoleAdmin},
	},
	StatusDeclined:  {},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	edges, exists := validTransitions[s]
	if !exists {
		return false
	}
	_, ok := edges[target]
	return ok
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	edges, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(edges) == 0
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// AuthorizeTransition validates that the requested edge exists in the state
// table and that the actor's role may request it. The edge is checked before
// the role, so an unknown edge fails as an invalid transition rather than a
// permission error.
func AuthorizeTransition(from, to BookingStatus, role ActorRole) error {
	edges, exists := validTransitions[from]
	if !exists {
		return domain.NewInvalidStateError(string(from), string(to))
	}
	roles, ok := edges[to]
	if !ok {
		return domain.NewInvalidStateError(string(from), string(to))
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return domain.NewForbiddenError(
		fmt.Sprintf("role %s may not move a booking from %s to %s", role, from, to),
	)
}
