package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/glambook/service-booking/internal/domain/booking"
	"github.com/glambook/service-booking/pkg/domain"
	"github.com/glambook/service-booking/pkg/kafka"
)

// TopicBookingEvents carries lifecycle CloudEvents for downstream services.
const TopicBookingEvents = "booking.events"

// sideEffectTimeout bounds each post-commit side effect so a slow collaborator
// cannot hold the request open indefinitely.
const sideEffectTimeout = 5 * time.Second

// PaymentCoordinator hooks payment holds into the lifecycle.
type PaymentCoordinator interface {
	Authorize(ctx context.Context, bk *bookingDomain.Booking) error
	Void(ctx context.Context, bk *bookingDomain.Booking) error
}

// Notifier dispatches best-effort status notifications.
type Notifier interface {
	DispatchStatusChange(ctx context.Context, bk *bookingDomain.Booking, status bookingDomain.BookingStatus)
}

// Auditor records who changed what.
type Auditor interface {
	RecordCreate(ctx context.Context, actorID, bookingID uuid.UUID, status string) error
	RecordStatusChange(ctx context.Context, actorID, bookingID uuid.UUID, from, to string) error
}

// EventPublisher publishes CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, evt kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ArtistID         uuid.UUID `json:"artist_id" binding:"required"`
	ServiceType      string    `json:"service_type" binding:"required"`
	Occasion         string    `json:"occasion"`
	ScheduledAt      time.Time `json:"scheduled_at" binding:"required"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Notes            string    `json:"notes"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID               uuid.UUID                    `json:"id"`
	BookingNumber    string                       `json:"booking_number"`
	CustomerID       uuid.UUID                    `json:"customer_id"`
	ArtistID         uuid.UUID                    `json:"artist_id"`
	ServiceType      string                       `json:"service_type"`
	Occasion         string                       `json:"occasion,omitempty"`
	Status           string                       `json:"status"`
	StatusHistory    bookingDomain.StatusHistory  `json:"status_history"`
	TotalAmountCents int64                        `json:"total_amount_cents"`
	Currency         string                       `json:"currency"`
	ScheduledAt      time.Time                    `json:"scheduled_at"`
	CancelReason     string                       `json:"cancel_reason,omitempty"`
	Notes            string                       `json:"notes,omitempty"`
	Version          int64                        `json:"version"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// BookingStatusChangedEvent is published to booking.events on every transition.
type BookingStatusChangedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	CustomerID    uuid.UUID `json:"customer_id"`
	ArtistID      uuid.UUID `json:"artist_id"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	ActorID       uuid.UUID `json:"actor_id"`
	ActorRole     string    `json:"actor_role"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingService orchestrates the booking lifecycle: it validates requested
// transitions, persists the new state atomically, and fires the post-commit
// side effects (payment, notification, audit, event publishing) in order.
type BookingService struct {
	repo     bookingDomain.BookingRepository
	pricing  bookingDomain.PricingStrategy
	payments PaymentCoordinator
	notifier Notifier
	auditor  Auditor
	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	pricing bookingDomain.PricingStrategy,
	payments PaymentCoordinator,
	notifier Notifier,
	auditor Auditor,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		pricing:  pricing,
		payments: payments,
		notifier: notifier,
		auditor:  auditor,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking creates a new pending booking for the given customer. When
// the client sends no amount, the standard rate card quotes one.
func (s *BookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	serviceType := bookingDomain.ServiceType(req.ServiceType)

	amount := req.TotalAmountCents
	if amount == 0 {
		quoted, err := s.pricing.Quote(bookingDomain.PricingParams{
			ServiceType: serviceType,
			Occasion:    req.Occasion,
		})
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
		}
		amount = quoted
	}

	now := time.Now().UTC()
	bk, err := bookingDomain.NewBooking(
		customerID,
		req.ArtistID,
		serviceType,
		req.Occasion,
		req.ScheduledAt,
		amount,
		domain.CurrencyMYR,
		req.Notes,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	// Post-commit follow-ups: the booking exists regardless of their outcome.
	fxCtx, cancel := s.sideEffectContext(ctx)
	defer cancel()

	s.notifier.DispatchStatusChange(fxCtx, bk, bookingDomain.StatusPending)
	if err := s.auditor.RecordCreate(fxCtx, customerID, bk.ID(), string(bookingDomain.StatusPending)); err != nil {
		s.logger.Error("failed to record booking creation audit",
			zap.String("booking_id", bk.ID().String()),
			zap.Error(err),
		)
	}
	s.publishStatusChanged(fxCtx, bk, "", bookingDomain.TransitionRequest{
		ActorID:   customerID,
		ActorRole: bookingDomain.RoleCustomer,
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// Transition applies one validated status change. Structural failures
// (NotFound, Forbidden, InvalidState, Conflict) abort before any mutation;
// once the compare-and-set commits, side-effect failures are logged and
// swallowed, never rolled back.
func (s *BookingService) Transition(ctx context.Context, req bookingDomain.TransitionRequest) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// Re-requesting the current status is a duplicate client retry: succeed
	// without a history append or side effects.
	if bk.Status() == req.Status {
		result := toBookingDTO(bk)
		return &result, nil
	}

	prior := bk.Status()
	if err := bk.ApplyTransition(req, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, bk, prior); err != nil {
		return nil, err
	}

	s.dispatchSideEffects(ctx, bk, prior, req)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// AcceptBooking moves a pending booking to confirmed (artist).
func (s *BookingService) AcceptBooking(ctx context.Context, bookingID, actorID uuid.UUID, role bookingDomain.ActorRole) (*BookingDTO, error) {
	return s.Transition(ctx, bookingDomain.TransitionRequest{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: role,
		Status:    bookingDomain.StatusConfirmed,
	})
}

// DeclineBooking moves a pending booking to declined (artist).
func (s *BookingService) DeclineBooking(ctx context.Context, bookingID, actorID uuid.UUID, role bookingDomain.ActorRole, reason string) (*BookingDTO, error) {
	return s.Transition(ctx, bookingDomain.TransitionRequest{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: role,
		Status:    bookingDomain.StatusDeclined,
		Reason:    reason,
	})
}

// StartBooking moves a confirmed booking to in_progress.
func (s *BookingService) StartBooking(ctx context.Context, bookingID, actorID uuid.UUID, role bookingDomain.ActorRole) (*BookingDTO, error) {
	return s.Transition(ctx, bookingDomain.TransitionRequest{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: role,
		Status:    bookingDomain.StatusInProgress,
	})
}

// CompleteBooking moves an in_progress booking to completed (artist).
func (s *BookingService) CompleteBooking(ctx context.Context, bookingID, actorID uuid.UUID, role bookingDomain.ActorRole) (*BookingDTO, error) {
	return s.Transition(ctx, bookingDomain.TransitionRequest{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: role,
		Status:    bookingDomain.StatusCompleted,
	})
}

// CancelBooking moves a booking to cancelled; which prior states are legal
// depends on the actor's role.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, role bookingDomain.ActorRole, reason string) (*BookingDTO, error) {
	return s.Transition(ctx, bookingDomain.TransitionRequest{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: role,
		Status:    bookingDomain.StatusCancelled,
		Reason:    reason,
	})
}

// GetCustomerBookings retrieves paginated bookings for a customer.
func (s *BookingService) GetCustomerBookings(ctx context.Context, customerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetArtistBookings retrieves paginated bookings for an artist.
func (s *BookingService) GetArtistBookings(ctx context.Context, artistID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByArtistID(ctx, artistID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// --- Side effects ---

// dispatchSideEffects runs the post-commit pipeline in fixed order: payment
// hook, notification, audit, event. The status change is already durable;
// every failure here is logged for reconciliation and swallowed.
func (s *BookingService) dispatchSideEffects(ctx context.Context, bk *bookingDomain.Booking, prior bookingDomain.BookingStatus, req bookingDomain.TransitionRequest) {
	fxCtx, cancel := s.sideEffectContext(ctx)
	defer cancel()

	switch bk.Status() {
	case bookingDomain.StatusConfirmed:
		if err := s.payments.Authorize(fxCtx, bk); err != nil {
			s.logger.Error("payment authorization side effect failed",
				zap.String("booking_id", bk.ID().String()),
				zap.Error(err),
			)
		}
	case bookingDomain.StatusCancelled, bookingDomain.StatusDeclined:
		if err := s.payments.Void(fxCtx, bk); err != nil {
			s.logger.Error("payment void side effect failed",
				zap.String("booking_id", bk.ID().String()),
				zap.Error(err),
			)
		}
	}

	s.notifier.DispatchStatusChange(fxCtx, bk, bk.Status())

	if err := s.auditor.RecordStatusChange(fxCtx, req.ActorID, bk.ID(), string(prior), string(bk.Status())); err != nil {
		s.logger.Error("failed to record status change audit",
			zap.String("booking_id", bk.ID().String()),
			zap.Error(err),
		)
	}

	s.publishStatusChanged(fxCtx, bk, prior, req)
}

// sideEffectContext detaches side effects from the request's cancellation:
// the transition is committed, so a client disconnect must not abort the
// fan-out. Each effect still gets a bounded deadline.
func (s *BookingService) sideEffectContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
}

func (s *BookingService) publishStatusChanged(ctx context.Context, bk *bookingDomain.Booking, prior bookingDomain.BookingStatus, req bookingDomain.TransitionRequest) {
	evt := BookingStatusChangedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		CustomerID:    bk.CustomerID(),
		ArtistID:      bk.ArtistID(),
		FromStatus:    string(prior),
		ToStatus:      string(bk.Status()),
		ActorID:       req.ActorID,
		ActorRole:     string(req.ActorRole),
		OccurredAt:    time.Now().UTC(),
	}

	cloudEvent, err := kafka.NewCloudEvent("service-booking", "booking.status_changed", evt)
	if err != nil {
		s.logger.Error("failed to create cloud event", zap.Error(err))
		return
	}

	if err := s.producer.PublishEvent(ctx, TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish booking event",
			zap.String("booking_id", bk.ID().String()),
			zap.Error(err),
		)
	}
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:               bk.ID(),
		BookingNumber:    bk.BookingNumber(),
		CustomerID:       bk.CustomerID(),
		ArtistID:         bk.ArtistID(),
		ServiceType:      string(bk.ServiceType()),
		Occasion:         bk.Occasion(),
		Status:           string(bk.Status()),
		StatusHistory:    bk.History(),
		TotalAmountCents: bk.TotalAmountCents(),
		Currency:         bk.Currency(),
		ScheduledAt:      bk.ScheduledAt(),
		CancelReason:     bk.CancelReason(),
		Notes:            bk.Notes(),
		Version:          bk.Version(),
		CreatedAt:        bk.CreatedAt(),
		UpdatedAt:        bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
