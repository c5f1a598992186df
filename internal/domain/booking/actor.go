package booking

import (
	"fmt"

	"github.com/google/uuid"
)

// ActorRole identifies which party is requesting a lifecycle operation.
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleArtist   ActorRole = "artist"
	RoleAdmin    ActorRole = "admin"
)

// IsValid returns true if the role is recognized.
func (r ActorRole) IsValid() bool {
	switch r {
	case RoleCustomer, RoleArtist, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of the role.
func (r ActorRole) String() string {
	return string(r)
}

// ParseActorRole converts a string to an ActorRole, returning an error if invalid.
func ParseActorRole(s string) (ActorRole, error) {
	role := ActorRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid actor role: %s", s)
	}
	return role, nil
}

// TransitionRequest is the typed, validated form of a status change request.
// It lives only for the duration of one lifecycle call and is never persisted.
type TransitionRequest struct {
	BookingID uuid.UUID
	ActorID   uuid.UUID
	ActorRole ActorRole
	Status    BookingStatus
	Reason    string
}
