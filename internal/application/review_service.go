package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/glambook/service-booking/internal/domain/booking"
	reviewDomain "github.com/glambook/service-booking/internal/domain/review"
	"github.com/glambook/service-booking/pkg/domain"
)

// CreateReviewRequest is the request DTO for reviewing a completed booking.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ReviewDTO is the API response representation of a review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ArtistID   uuid.UUID `json:"artist_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ArtistRatingDTO summarizes an artist's reviews.
type ArtistRatingDTO struct {
	ArtistID      uuid.UUID `json:"artist_id"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
}

// ReviewService implements use cases for booking reviews.
type ReviewService struct {
	reviews  reviewDomain.ReviewRepository
	bookings bookingDomain.BookingRepository
	logger   *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviews reviewDomain.ReviewRepository,
	bookings bookingDomain.BookingRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings, logger: logger}
}

// CreateReview records a customer's review of their completed booking. Only
// the booking's customer may review, only completed bookings are reviewable,
// and each booking gets at most one review.
func (s *ReviewService) CreateReview(ctx context.Context, customerID, bookingID uuid.UUID, req CreateReviewRequest) (*ReviewDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.CustomerID() != customerID {
		return nil, domain.NewForbiddenError("booking does not belong to this customer")
	}
	if bk.Status() != bookingDomain.StatusCompleted {
		return nil, domain.NewInvalidStateError(string(bk.Status()), "reviewed")
	}

	existing, err := s.reviews.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError("booking has already been reviewed")
	}

	rv, err := reviewDomain.NewReview(bookingID, customerID, bk.ArtistID(), req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Save(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.logger.Info("review created",
		zap.String("booking_id", bookingID.String()),
		zap.Int("rating", rv.Rating()),
	)
	result := toReviewDTO(rv)
	return &result, nil
}

// GetArtistReviews returns paginated reviews for an artist.
func (s *ReviewService) GetArtistReviews(ctx context.Context, artistID uuid.UUID, page, limit int) (*domain.PaginatedResult[ReviewDTO], error) {
	reviews, total, err := s.reviews.FindByArtistID(ctx, artistID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReviewDTO, len(reviews))
	for i, rv := range reviews {
		dtos[i] = toReviewDTO(rv)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetArtistRating returns the artist's aggregate rating.
func (s *ReviewService) GetArtistRating(ctx context.Context, artistID uuid.UUID) (*ArtistRatingDTO, error) {
	avg, count, err := s.reviews.AverageRatingByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	return &ArtistRatingDTO{
		ArtistID:      artistID,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

func toReviewDTO(rv *reviewDomain.Review) ReviewDTO {
	return ReviewDTO{
		ID:         rv.ID(),
		BookingID:  rv.BookingID(),
		CustomerID: rv.CustomerID(),
		ArtistID:   rv.ArtistID(),
		Rating:     rv.Rating(),
		Comment:    rv.Comment(),
		CreatedAt:  rv.CreatedAt(),
	}
}
