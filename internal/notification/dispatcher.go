package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/glambook/service-booking/internal/domain/booking"
)

// Message is one push notification payload.
type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushSender delivers a message to a single device token.
type PushSender interface {
	Send(ctx context.Context, token string, msg Message) error
}

// TokenStore resolves a user's registered device tokens.
type TokenStore interface {
	TokensFor(ctx context.Context, userID uuid.UUID) ([]string, error)
	Register(ctx context.Context, userID uuid.UUID, token string) error
}

// Dispatcher builds localized status-change messages and pushes them to the
// affected parties. Delivery is best-effort: every failure is logged, none is
// propagated, and a missing template skips dispatch silently.
type Dispatcher struct {
	sender PushSender
	tokens TokenStore
	locale string
	logger *zap.Logger
}

// NewDispatcher creates a Dispatcher with the platform default locale.
func NewDispatcher(sender PushSender, tokens TokenStore, defaultLocale string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		tokens: tokens,
		locale: defaultLocale,
		logger: logger,
	}
}

// MessageFor builds the localized message for a booking status, or nil when
// no template exists for that status.
func (d *Dispatcher) MessageFor(bk *bookingDomain.Booking, status bookingDomain.BookingStatus, locale string) *Message {
	tag := matchLocale(locale)
	tmpl, ok := statusTemplates[tag][status]
	if !ok {
		return nil
	}

	date := formatScheduledDate(tag, bk.ScheduledAt())
	return &Message{
		Title: tmpl.Title,
		Body:  fmt.Sprintf(tmpl.Body, bk.BookingNumber(), date),
		Data: map[string]string{
			"booking_id": bk.ID().String(),
			"status":     string(status),
		},
	}
}

// DispatchStatusChange pushes the status message to the booking's customer
// and artist. There is nothing to do when the status has no template.
func (d *Dispatcher) DispatchStatusChange(ctx context.Context, bk *bookingDomain.Booking, status bookingDomain.BookingStatus) {
	msg := d.MessageFor(bk, status, d.locale)
	if msg == nil {
		d.logger.Debug("no notification template for status",
			zap.String("status", string(status)),
		)
		return
	}

	for _, recipient := range []uuid.UUID{bk.CustomerID(), bk.ArtistID()} {
		d.sendToUser(ctx, recipient, *msg)
	}
}

func (d *Dispatcher) sendToUser(ctx context.Context, userID uuid.UUID, msg Message) {
	tokens, err := d.tokens.TokensFor(ctx, userID)
	if err != nil {
		d.logger.Warn("failed to resolve device tokens",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	for _, token := range tokens {
		if err := d.sender.Send(ctx, token, msg); err != nil {
			d.logger.Warn("push delivery failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}
}
