package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	bookingDomain "github.com/glambook/service-booking/internal/domain/booking"
	paymentDomain "github.com/glambook/service-booking/internal/domain/payment"
)

// AuthorizeRequest carries the inputs for placing a payment hold.
type AuthorizeRequest struct {
	BookingID     string
	BookingNumber string
	AmountCents   int64
	Currency      string
}

// AuthResult is the provider's answer to an authorization attempt.
type AuthResult struct {
	TransactionID string
	Authorized    bool
	FailureReason string
}

// Provider is the payment gateway the coordinator talks to.
type Provider interface {
	// Name identifies the provider in authorization records.
	Name() string

	// Authorize places a hold on the customer's funds without capturing.
	Authorize(ctx context.Context, req AuthorizeRequest) (AuthResult, error)

	// Void releases a previously placed hold.
	Void(ctx context.Context, transactionID string) error
}

// Coordinator manages the 0-or-1 active authorization per booking: it
// authorizes once on the confirmation path and voids on cancellation and
// decline paths. Provider calls go through a circuit breaker so a gateway
// outage cannot pile up blocked requests.
type Coordinator struct {
	auths    paymentDomain.AuthorizationRepository
	provider Provider
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
}

// NewCoordinator creates a Coordinator for the given provider.
func NewCoordinator(
	auths paymentDomain.AuthorizationRepository,
	provider Provider,
	logger *zap.Logger,
) *Coordinator {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "payment-provider",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
	})
	return &Coordinator{
		auths:    auths,
		provider: provider,
		breaker:  breaker,
		logger:   logger,
	}
}

// Authorize places a hold for the booking's total amount. Calling it again
// for a booking that already has an active authorization is a no-op. A
// declined or failed provider call is not an error to the caller: the failed
// attempt is recorded for out-of-band reconciliation and the booking keeps
// its confirmed status.
func (c *Coordinator) Authorize(ctx context.Context, bk *bookingDomain.Booking) error {
	existing, err := c.auths.FindActiveByBookingID(ctx, bk.ID())
	if err != nil {
		return err
	}
	if existing != nil {
		c.logger.Debug("booking already authorized",
			zap.String("booking_id", bk.ID().String()),
			zap.String("transaction_id", existing.TransactionID),
		)
		return nil
	}

	result, callErr := c.breaker.Execute(func() (interface{}, error) {
		return c.provider.Authorize(ctx, AuthorizeRequest{
			BookingID:     bk.ID().String(),
			BookingNumber: bk.BookingNumber(),
			AmountCents:   bk.TotalAmountCents(),
			Currency:      bk.Currency(),
		})
	})

	now := time.Now().UTC()
	auth := &paymentDomain.Authorization{
		ID:          uuid.New(),
		BookingID:   bk.ID(),
		Provider:    c.provider.Name(),
		AmountCents: bk.TotalAmountCents(),
		Currency:    bk.Currency(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch {
	case callErr != nil:
		auth.Status = paymentDomain.AuthorizationFailed
		auth.FailureReason = callErr.Error()
		c.logger.Error("payment authorization call failed",
			zap.String("booking_id", bk.ID().String()),
			zap.Error(callErr),
		)
	default:
		res := result.(AuthResult)
		auth.TransactionID = res.TransactionID
		if res.Authorized {
			auth.Status = paymentDomain.AuthorizationAuthorized
		} else {
			auth.Status = paymentDomain.AuthorizationFailed
			auth.FailureReason = res.FailureReason
			c.logger.Warn("payment authorization declined",
				zap.String("booking_id", bk.ID().String()),
				zap.String("reason", res.FailureReason),
			)
		}
	}

	return c.auths.Save(ctx, auth)
}

// Void releases the booking's active hold. Voiding a booking with no active
// authorization is a no-op success.
func (c *Coordinator) Void(ctx context.Context, bk *bookingDomain.Booking) error {
	auth, err := c.auths.FindActiveByBookingID(ctx, bk.ID())
	if err != nil {
		return err
	}
	if auth == nil {
		return nil
	}

	if _, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.provider.Void(ctx, auth.TransactionID)
	}); err != nil {
		c.logger.Error("payment void call failed",
			zap.String("booking_id", bk.ID().String()),
			zap.String("transaction_id", auth.TransactionID),
			zap.Error(err),
		)
		return err
	}

	return c.auths.UpdateStatus(ctx, auth.ID, paymentDomain.AuthorizationVoided)
}
