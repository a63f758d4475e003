package domain

import (
	"context"
	"time"
)

type Room struct {
	ID   int
	Name string
}

// Seat is immutable after creation. It references its room by id only;
// relationships are resolved by lookup, never by embedded object references.
type Seat struct {
	ID     int
	RoomID int
	Row    int
	Number int
}

// SeatStatus is the per-seat availability view for one screening, combining
// sold tickets and currently active holds.
type SeatStatus struct {
	SeatID        int
	Row           int
	Number        int
	Available     bool
	HoldingUserID *int
	ExpiresAt     *time.Time
}

type RoomRepository interface {
	GetById(ctx context.Context, id int) (*Room, error)
}

type SeatRepository interface {
	GetById(ctx context.Context, id int) (*Seat, error)
	GetAllByRoom(ctx context.Context, roomID int) ([]Seat, error)
	GetByIds(ctx context.Context, ids []int) ([]Seat, error)
}
