package domain

import (
	"context"
	"time"
)

// Hold is a time-bounded claim on a seat for a screening. It is created by
// the reservation coordinator, mutated only to push its expiry forward, and
// deleted on cancel, on finalize, or by the expiration sweeper.
type Hold struct {
	ID          int
	SeatID      int
	ScreeningID int
	UserID      int
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// HoldRepository is the seat lock store. TryAcquire is the only operation
// that takes an exclusive lock; every other method is a single atomic
// statement and relies on TryAcquire re-checking state at write time.
type HoldRepository interface {
	TryAcquire(ctx context.Context, seatID, screeningID, userID int, now time.Time, ttl time.Duration) (*Hold, error)
	Release(ctx context.Context, seatID, screeningID, userID int) error
	Extend(ctx context.Context, holdIDs []int, newExpiry time.Time) error
	FindActiveByUser(ctx context.Context, userID int, now time.Time) ([]Hold, error)
	FindActiveByScreening(ctx context.Context, screeningID int, now time.Time) ([]Hold, error)
	FindActiveByUserAndSeats(ctx context.Context, userID int, seatIDs []int, now time.Time) ([]Hold, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
