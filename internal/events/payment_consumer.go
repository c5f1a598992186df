package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	paymentDomain "github.com/glambook/service-booking/internal/domain/payment"
	"github.com/glambook/service-booking/pkg/kafka"
)

// TopicPaymentEvents carries the payment gateway's webhook events, relayed
// onto Kafka by the platform's payment service.
const TopicPaymentEvents = "payment.events"

// Payment event types this consumer reconciles against authorization records.
const (
	PaymentHoldExpired = "payment.hold.expired"
	PaymentHoldVoided  = "payment.hold.voided"
)

// HoldEvent is the payload for hold expiry and provider-side void events.
type HoldEvent struct {
	TransactionID string    `json:"transaction_id"`
	BookingID     uuid.UUID `json:"booking_id"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PaymentEventConsumer reconciles authorization records when the provider
// reports a hold change out-of-band (expiry, dashboard void). The booking's
// scheduling state is deliberately untouched: operators resolve mismatches
// manually.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	auths    paymentDomain.AuthorizationRepository
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	auths paymentDomain.AuthorizationRepository,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		auths:    auths,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case PaymentHoldExpired:
		return c.reconcileHold(ctx, cloudEvent, paymentDomain.AuthorizationFailed)
	case PaymentHoldVoided:
		return c.reconcileHold(ctx, cloudEvent, paymentDomain.AuthorizationVoided)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) reconcileHold(ctx context.Context, cloudEvent kafka.CloudEvent, status paymentDomain.AuthorizationStatus) error {
	var evt HoldEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse hold event data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	auth, err := c.auths.FindByTransactionID(ctx, evt.TransactionID)
	if err != nil {
		return err
	}
	if auth == nil {
		c.logger.Warn("hold event for unknown transaction",
			zap.String("transaction_id", evt.TransactionID),
			zap.String("booking_id", evt.BookingID.String()),
		)
		return nil
	}
	if auth.Status != paymentDomain.AuthorizationAuthorized {
		// Already reconciled; provider webhooks redeliver.
		return nil
	}

	if err := c.auths.UpdateStatus(ctx, auth.ID, status); err != nil {
		return err
	}

	c.logger.Info("authorization reconciled from provider event",
		zap.String("booking_id", auth.BookingID.String()),
		zap.String("transaction_id", evt.TransactionID),
		zap.String("status", string(status)),
	)
	return nil
}
