package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error)
	FindByArtistID(ctx context.Context, artistID uuid.UUID, page, limit int) ([]*Review, int64, error)
	AverageRatingByArtist(ctx context.Context, artistID uuid.UUID) (float64, int64, error)
	Save(ctx context.Context, review *Review) error
}
