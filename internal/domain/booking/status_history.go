package booking

import "time"

// StatusChange is one immutable entry in a booking's status history.
type StatusChange struct {
	Status    BookingStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

// StatusHistory is the append-only ledger of a booking's status changes.
// The last entry always matches the booking's current status.
type StatusHistory []StatusChange

// Append returns a new history with the given change added. The receiver is
// never mutated; callers always get a fresh backing array.
func (h StatusHistory) Append(status BookingStatus, at time.Time) StatusHistory {
	extended := make(StatusHistory, len(h), len(h)+1)
	copy(extended, h)
	return append(extended, StatusChange{Status: status, Timestamp: at})
}

// Last returns the most recent status change, or false for an empty history.
func (h StatusHistory) Last() (StatusChange, bool) {
	if len(h) == 0 {
		return StatusChange{}, false
	}
	return h[len(h)-1], true
}
