package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reviewDomain "github.com/glambook/service-booking/internal/domain/review"
	"github.com/glambook/service-booking/pkg/domain"
)

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	ArtistID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"size:2000"`
	Version    int64     `gorm:"not null;default:1"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReviewModel) TableName() string {
	return "reviews"
}

// GormReviewRepository is the GORM-based implementation of ReviewRepository.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID retrieves a review by its unique identifier.
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*reviewDomain.Review, error) {
	var model ReviewModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Review", id.String())
		}
		return nil, fmt.Errorf("failed to find review by ID: %w", err)
	}
	return toDomainReview(&model), nil
}

// FindByBookingID retrieves the review for a booking, or nil when none exists.
func (r *GormReviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*reviewDomain.Review, error) {
	var model ReviewModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find review by booking: %w", err)
	}
	return toDomainReview(&model), nil
}

// FindByArtistID retrieves reviews for an artist with pagination.
func (r *GormReviewRepository) FindByArtistID(ctx context.Context, artistID uuid.UUID, page, limit int) ([]*reviewDomain.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ReviewModel{}).Where("artist_id = ?", artistID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var models []ReviewModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find reviews: %w", err)
	}

	reviews := make([]*reviewDomain.Review, len(models))
	for i, m := range models {
		reviews[i] = toDomainReview(&m)
	}
	return reviews, total, nil
}

// AverageRatingByArtist returns the artist's average rating and review count.
func (r *GormReviewRepository) AverageRatingByArtist(ctx context.Context, artistID uuid.UUID) (float64, int64, error) {
	type aggregate struct {
		Avg   float64
		Count int64
	}
	var result aggregate
	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("artist_id = ?", artistID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	return result.Avg, result.Count, nil
}

// Save persists a new review.
func (r *GormReviewRepository) Save(ctx context.Context, review *reviewDomain.Review) error {
	model := ReviewModel{
		ID:         review.ID(),
		BookingID:  review.BookingID(),
		CustomerID: review.CustomerID(),
		ArtistID:   review.ArtistID(),
		Rating:     review.Rating(),
		Comment:    review.Comment(),
		Version:    review.Version(),
		CreatedAt:  review.CreatedAt(),
		UpdatedAt:  review.UpdatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

func toDomainReview(m *ReviewModel) *reviewDomain.Review {
	return reviewDomain.Reconstruct(
		m.ID,
		m.BookingID,
		m.CustomerID,
		m.ArtistID,
		m.Rating,
		m.Comment,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
