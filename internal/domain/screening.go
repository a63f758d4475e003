package domain

import (
	"context"
	"time"
)

type Screening struct {
	ID        int
	MovieID   int
	RoomID    int
	StartTime time.Time
	EndTime   time.Time
}

// Collision describes an existing screening that intersects a proposed
// time window once both sides are padded with the cleaning buffer.
type Collision struct {
	ScreeningID int
	MovieTitle  string
	RoomName    string
	StartTime   time.Time
	EndTime     time.Time
}

type ScreeningListItem struct {
	ID         int
	MovieTitle string
	RoomName   string
	StartTime  time.Time
	EndTime    time.Time
}

type ScreeningRepository interface {
	GetById(ctx context.Context, id int) (*Screening, error)
	GetAllForList(ctx context.Context) ([]ScreeningListItem, error)
	Create(ctx context.Context, screening *Screening) error
	Update(ctx context.Context, screening *Screening) error
	// ExistsOverlapping reports whether any screening in the room other than
	// excludeID has start_time < windowEnd and end_time > windowStart. Pass
	// excludeID = 0 when creating.
	ExistsOverlapping(ctx context.Context, roomID int, windowStart, windowEnd time.Time, excludeID int) (bool, error)
	FindOverlapping(ctx context.Context, roomID int, windowStart, windowEnd time.Time, excludeID int) ([]Collision, error)
}
