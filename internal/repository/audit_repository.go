package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glambook/service-booking/internal/audit"
)

// AuditEntryModel is the GORM model for the audit_entries table. Rows are
// insert-only; there is no update or delete path.
type AuditEntryModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	EntityType string          `gorm:"not null;size:30;index"`
	EntityID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Action     string          `gorm:"not null;size:50"`
	Changes    json.RawMessage `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// GormAuditSink appends audit entries to PostgreSQL.
type GormAuditSink struct {
	db *gorm.DB
}

// NewGormAuditSink creates a new GormAuditSink.
func NewGormAuditSink(db *gorm.DB) *GormAuditSink {
	return &GormAuditSink{db: db}
}

// Append inserts one audit entry.
func (s *GormAuditSink) Append(ctx context.Context, entry audit.Entry) error {
	changesJSON, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("failed to marshal audit changes: %w", err)
	}

	model := AuditEntryModel{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		Changes:    changesJSON,
		CreatedAt:  entry.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
