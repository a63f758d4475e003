package domain

import (
	"context"
	"time"
)

// Movie is a read-only catalog reference; catalog management lives outside
// the reservation core.
type Movie struct {
	ID              int
	Title           string
	DurationMinutes int
	PosterUrl       string
	ReleaseDate     time.Time
}

func (m Movie) Duration() time.Duration {
	return time.Duration(m.DurationMinutes) * time.Minute
}

type MovieRepository interface {
	GetById(ctx context.Context, id int) (*Movie, error)
}
