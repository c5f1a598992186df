package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/glambook/service-booking/pkg/domain"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Booking is the aggregate root for the booking domain. Its status changes
// only through ApplyTransition; the status history grows in lockstep and its
// last entry always equals the current status. Bookings are never deleted --
// cancellation is a status.
type Booking struct {
	id            uuid.UUID
	bookingNumber string
	customerID    uuid.UUID
	artistID      uuid.UUID
	serviceType   ServiceType
	occasion      string
	status        BookingStatus
	history       StatusHistory

	totalAmountCents int64
	currency         string

	scheduledAt  time.Time
	cancelReason string
	notes        string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateBookingNumber creates a booking number in the format "GB-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "GB-" + string(result), nil
}

// NewBooking creates a new Booking aggregate with status=pending and a single
// history entry recording it.
func NewBooking(
	customerID uuid.UUID,
	artistID uuid.UUID,
	serviceType ServiceType,
	occasion string,
	scheduledAt time.Time,
	totalAmountCents int64,
	currency string,
	notes string,
	now time.Time,
) (*Booking, error) {
	if customerID == uuid.Nil {
		return nil, domain.NewValidationError("customer ID is required")
	}
	if artistID == uuid.Nil {
		return nil, domain.NewValidationError("artist ID is required")
	}
	if !serviceType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid service type: %s", serviceType))
	}
	if !scheduledAt.After(now) {
		return nil, domain.NewValidationError("scheduled date must be in the future")
	}
	if totalAmountCents <= 0 {
		return nil, domain.NewValidationError("total amount must be positive")
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:               uuid.New(),
		bookingNumber:    bookingNumber,
		customerID:       customerID,
		artistID:         artistID,
		serviceType:      serviceType,
		occasion:         occasion,
		status:           StatusPending,
		history:          StatusHistory{}.Append(StatusPending, now),
		totalAmountCents: totalAmountCents,
		currency:         currency,
		scheduledAt:      scheduledAt.UTC(),
		notes:            notes,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	bookingNumber string,
	customerID uuid.UUID,
	artistID uuid.UUID,
	serviceType ServiceType,
	occasion string,
	status BookingStatus,
	history StatusHistory,
	totalAmountCents int64,
	currency string,
	scheduledAt time.Time,
	cancelReason string,
	notes string,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		bookingNumber:    bookingNumber,
		customerID:       customerID,
		artistID:         artistID,
		serviceType:      serviceType,
		occasion:         occasion,
		status:           status,
		history:          history,
		totalAmountCents: totalAmountCents,
		currency:         currency,
		scheduledAt:      scheduledAt,
		cancelReason:     cancelReason,
		notes:            notes,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking number.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// CustomerID returns the customer's user ID.
func (b *Booking) CustomerID() uuid.UUID { return b.customerID }

// ArtistID returns the artist's user ID.
func (b *Booking) ArtistID() uuid.UUID { return b.artistID }

// ServiceType returns the booked service type.
func (b *Booking) ServiceType() ServiceType { return b.serviceType }

// Occasion returns the occasion for the appointment.
func (b *Booking) Occasion() string { return b.occasion }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// History returns the append-only status history.
func (b *Booking) History() StatusHistory { return b.history }

// TotalAmountCents returns the booking price in cents.
func (b *Booking) TotalAmountCents() int64 { return b.totalAmountCents }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// ScheduledAt returns the appointment time (UTC).
func (b *Booking) ScheduledAt() time.Time { return b.scheduledAt }

// CancelReason returns the cancellation or decline reason.
func (b *Booking) CancelReason() string { return b.cancelReason }

// Notes returns any additional notes for the booking.
func (b *Booking) Notes() string { return b.notes }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// ApplyTransition validates the requested transition against the state table
// and the actor's role, then updates the status, appends a history entry, and
// bumps the version. Requesting the current status is the caller's no-op case
// and must be handled before calling this.
func (b *Booking) ApplyTransition(req TransitionRequest, now time.Time) error {
	if err := AuthorizeTransition(b.status, req.Status, req.ActorRole); err != nil {
		return err
	}

	b.status = req.Status
	b.history = b.history.Append(req.Status, now)
	if req.Status == StatusCancelled || req.Status == StatusDeclined {
		b.cancelReason = req.Reason
	}
	b.version++
	b.updatedAt = now
	return nil
}
