package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/glambook/service-booking/pkg/domain"
)

// Review is the aggregate root for a customer's review of a completed booking.
type Review struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	customerID uuid.UUID
	artistID   uuid.UUID
	rating     int
	comment    string
	version    int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewReview creates a review with a validated rating.
func NewReview(bookingID, customerID, artistID uuid.UUID, rating int, comment string) (*Review, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if customerID == uuid.Nil {
		return nil, domain.NewValidationError("customer ID is required")
	}
	if rating < 1 || rating > 5 {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}

	now := time.Now().UTC()
	return &Review{
		id:         uuid.New(),
		bookingID:  bookingID,
		customerID: customerID,
		artistID:   artistID,
		rating:     rating,
		comment:    comment,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds a Review from persistence data (no validation).
func Reconstruct(
	id, bookingID, customerID, artistID uuid.UUID,
	rating int,
	comment string,
	version int64,
	createdAt, updatedAt time.Time,
) *Review {
	return &Review{
		id:         id,
		bookingID:  bookingID,
		customerID: customerID,
		artistID:   artistID,
		rating:     rating,
		comment:    comment,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// --- Getters ---

func (r *Review) ID() uuid.UUID         { return r.id }
func (r *Review) BookingID() uuid.UUID  { return r.bookingID }
func (r *Review) CustomerID() uuid.UUID { return r.customerID }
func (r *Review) ArtistID() uuid.UUID   { return r.artistID }
func (r *Review) Rating() int           { return r.rating }
func (r *Review) Comment() string       { return r.comment }
func (r *Review) Version() int64        { return r.version }
func (r *Review) CreatedAt() time.Time  { return r.createdAt }
func (r *Review) UpdatedAt() time.Time  { return r.updatedAt }
