package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentDomain "github.com/glambook/service-booking/internal/domain/payment"
)

// AuthorizationModel is the GORM model for the payment_authorizations table.
type AuthorizationModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Provider      string    `gorm:"not null;size:30"`
	Status        string    `gorm:"not null;size:20;index"`
	TransactionID string    `gorm:"index;size:100"`
	AmountCents   int64     `gorm:"not null"`
	Currency      string    `gorm:"not null;size:3"`
	FailureReason string    `gorm:"size:500"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AuthorizationModel) TableName() string {
	return "payment_authorizations"
}

// GormAuthorizationRepository is the GORM-based implementation of AuthorizationRepository.
type GormAuthorizationRepository struct {
	db *gorm.DB
}

// NewGormAuthorizationRepository creates a new GormAuthorizationRepository.
func NewGormAuthorizationRepository(db *gorm.DB) *GormAuthorizationRepository {
	return &GormAuthorizationRepository{db: db}
}

// FindActiveByBookingID returns the booking's authorized hold, or nil when none exists.
func (r *GormAuthorizationRepository) FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*paymentDomain.Authorization, error) {
	var model AuthorizationModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status = ?", bookingID, string(paymentDomain.AuthorizationAuthorized)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active authorization: %w", err)
	}
	auth := toDomainAuthorization(&model)
	return &auth, nil
}

// FindByTransactionID returns the authorization for a provider transaction.
func (r *GormAuthorizationRepository) FindByTransactionID(ctx context.Context, transactionID string) (*paymentDomain.Authorization, error) {
	var model AuthorizationModel
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find authorization by transaction: %w", err)
	}
	auth := toDomainAuthorization(&model)
	return &auth, nil
}

// Save persists a new authorization record.
func (r *GormAuthorizationRepository) Save(ctx context.Context, auth *paymentDomain.Authorization) error {
	model := AuthorizationModel{
		ID:            auth.ID,
		BookingID:     auth.BookingID,
		Provider:      auth.Provider,
		Status:        string(auth.Status),
		TransactionID: auth.TransactionID,
		AmountCents:   auth.AmountCents,
		Currency:      auth.Currency,
		FailureReason: auth.FailureReason,
		CreatedAt:     auth.CreatedAt,
		UpdatedAt:     auth.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save authorization: %w", err)
	}
	return nil
}

// UpdateStatus updates an authorization's status.
func (r *GormAuthorizationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status paymentDomain.AuthorizationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&AuthorizationModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update authorization status: %w", result.Error)
	}
	return nil
}

func toDomainAuthorization(m *AuthorizationModel) paymentDomain.Authorization {
	return paymentDomain.Authorization{
		ID:            m.ID,
		BookingID:     m.BookingID,
		Provider:      m.Provider,
		Status:        paymentDomain.AuthorizationStatus(m.Status),
		TransactionID: m.TransactionID,
		AmountCents:   m.AmountCents,
		Currency:      m.Currency,
		FailureReason: m.FailureReason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
