package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Change captures one field's before/after values.
type Change struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Entry is one immutable audit record: who changed what, when. Entries are
// append-only and never mutated after creation.
type Entry struct {
	ID         uuid.UUID         `json:"id"`
	ActorID    uuid.UUID         `json:"actor_id"`
	EntityType string            `json:"entity_type"`
	EntityID   uuid.UUID         `json:"entity_id"`
	Action     string            `json:"action"`
	Changes    map[string]Change `json:"changes"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Sink receives audit entries for durable storage.
type Sink interface {
	Append(ctx context.Context, entry Entry) error
}

// Recorder builds audit entries for booking operations and hands them to the
// sink. Sink failures are reported to the caller, who decides whether they
// are fatal; during side-effect fan-out they are logged and swallowed.
type Recorder struct {
	sink   Sink
	logger *zap.Logger
}

// NewRecorder creates a Recorder writing to the given sink.
func NewRecorder(sink Sink, logger *zap.Logger) *Recorder {
	return &Recorder{sink: sink, logger: logger}
}

// RecordCreate appends an audit entry for a newly created booking.
func (r *Recorder) RecordCreate(ctx context.Context, actorID, bookingID uuid.UUID, status string) error {
	entry := Entry{
		ID:         uuid.New(),
		ActorID:    actorID,
		EntityType: "booking",
		EntityID:   bookingID,
		Action:     "create",
		Changes: map[string]Change{
			"status": {Old: "", New: status},
		},
		CreatedAt: time.Now().UTC(),
	}
	return r.sink.Append(ctx, entry)
}

// RecordStatusChange appends an audit entry for a booking status transition.
func (r *Recorder) RecordStatusChange(ctx context.Context, actorID, bookingID uuid.UUID, from, to string) error {
	entry := Entry{
		ID:         uuid.New(),
		ActorID:    actorID,
		EntityType: "booking",
		EntityID:   bookingID,
		Action:     "status_change",
		Changes: map[string]Change{
			"status": {Old: from, New: to},
		},
		CreatedAt: time.Now().UTC(),
	}
	return r.sink.Append(ctx, entry)
}
