package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthorizationStatus is the state of a payment authorization hold.
type AuthorizationStatus string

const (
	AuthorizationAuthorized AuthorizationStatus = "authorized"
	AuthorizationVoided     AuthorizationStatus = "voided"
	AuthorizationFailed     AuthorizationStatus = "failed"
)

// Authorization records one payment hold for a booking. At most one
// authorization per booking is active ("authorized") at a time; voiding is
// the only mutation an authorized record ever sees.
type Authorization struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Provider      string
	Status        AuthorizationStatus
	TransactionID string
	AmountCents   int64
	Currency      string
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AuthorizationRepository defines persistence for payment authorizations.
type AuthorizationRepository interface {
	// FindActiveByBookingID returns the booking's authorized hold, or nil
	// when none exists.
	FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*Authorization, error)

	// FindByTransactionID returns the authorization for a provider transaction.
	FindByTransactionID(ctx context.Context, transactionID string) (*Authorization, error)

	// Save persists a new authorization record.
	Save(ctx context.Context, auth *Authorization) error

	// UpdateStatus updates an authorization's status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status AuthorizationStatus) error
}
