package domain

import (
	"context"
	"time"
)

// DefaultHoldTTL is how long an unconfirmed seat hold stays alive before the
// store reclaims it.
const DefaultHoldTTL = 5 * time.Minute

// SeatHold is a transient exclusive claim on one seat of one showing. A hold
// disappears in exactly one of three ways: its TTL lapses, its holder releases
// it, or it is consumed by a booking.
type SeatHold struct {
	ID        string    `json:"id"`
	ShowingID int       `json:"showingId"`
	Seat      string    `json:"seat"`
	HolderID  string    `json:"holderId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h SeatHold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// HoldStore manages seat hold lifetime. Implementations must guarantee that
// at most one live hold exists per (showing, seat) pair and that Acquire is
// all-or-nothing across the requested seat set.
type HoldStore interface {
	// Acquire creates holds for every requested seat, or for none of them.
	// When any seat is already held, it returns a *SeatUnavailableError
	// naming the conflicting seats.
	Acquire(ctx context.Context, showingID int, seats []string, holderID string, ttl time.Duration) ([]SeatHold, error)

	// Release deletes the given holds. Unknown, expired, or already consumed
	// hold IDs are ignored, so releasing twice is a no-op.
	Release(ctx context.Context, holdIDs []string) error

	// GetByIds resolves hold IDs to their live holds. Expired or unknown IDs
	// are simply absent from the result; callers decide whether that is an
	// error.
	GetByIds(ctx context.Context, holdIDs []string) ([]SeatHold, error)

	// HeldSeats maps each actively held seat of a showing to its holder.
	// Expired holds never appear, even if their bookkeeping has not been
	// physically purged yet.
	HeldSeats(ctx context.Context, showingID int) (map[string]string, error)

	// PruneExpired removes bookkeeping left behind by expired holds and
	// returns how many entries it cleaned up. Correctness never depends on
	// it being called.
	PruneExpired(ctx context.Context) (int, error)
}
