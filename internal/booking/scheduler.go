package booking

import (
	"context"
	"time"

	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

const DefaultCleaningBuffer = 15 * time.Minute

// Scheduler places screenings into room calendars. A room must stay idle
// for the cleaning buffer before and after every screening, so the overlap
// predicate pads the proposed window with the buffer on both sides.
// Windows that merely touch at the padded boundary do not collide.
type Scheduler struct {
	screenings     domain.ScreeningRepository
	movies         domain.MovieRepository
	rooms          domain.RoomRepository
	seats          domain.SeatRepository
	holds          domain.HoldRepository
	orders         domain.OrderRepository
	cleaningBuffer time.Duration
	now            func() time.Time
}

func NewScheduler(
	screenings domain.ScreeningRepository,
	movies domain.MovieRepository,
	rooms domain.RoomRepository,
	seats domain.SeatRepository,
	holds domain.HoldRepository,
	orders domain.OrderRepository,
	cleaningBuffer time.Duration) *Scheduler {

	if cleaningBuffer <= 0 {
		cleaningBuffer = DefaultCleaningBuffer
	}

	return &Scheduler{
		screenings:     screenings,
		movies:         movies,
		rooms:          rooms,
		seats:          seats,
		holds:          holds,
		orders:         orders,
		cleaningBuffer: cleaningBuffer,
		now:            time.Now,
	}
}

func (s *Scheduler) CleaningBuffer() time.Duration {
	return s.cleaningBuffer
}

// CreateScreening validates and persists a new screening. The end time is
// derived from the movie duration, never supplied by the caller.
func (s *Scheduler) CreateScreening(ctx context.Context, movieID, roomID int, start time.Time) (*domain.Screening, error) {
	return s.placeScreening(ctx, 0, movieID, roomID, start)
}

// UpdateScreening re-validates an existing screening against the room
// calendar, excluding the screening itself from the overlap check.
func (s *Scheduler) UpdateScreening(ctx context.Context, screeningID, movieID, roomID int, start time.Time) (*domain.Screening, error) {
	if _, err := s.screenings.GetById(ctx, screeningID); err != nil {
		return nil, err
	}

	return s.placeScreening(ctx, screeningID, movieID, roomID, start)
}

func (s *Scheduler) placeScreening(ctx context.Context, screeningID, movieID, roomID int, start time.Time) (*domain.Screening, error) {
	if start.Before(s.now()) {
		return nil, domain.ErrScreeningDateInPast
	}

	if _, err := s.rooms.GetById(ctx, roomID); err != nil {
		return nil, err
	}

	movie, err := s.movies.GetById(ctx, movieID)
	if err != nil {
		return nil, err
	}

	end := start.Add(movie.Duration())

	overlaps, err := s.screenings.ExistsOverlapping(
		ctx,
		roomID,
		start.Add(-s.cleaningBuffer),
		end.Add(s.cleaningBuffer),
		screeningID,
	)
	if err != nil {
		return nil, err
	}

	if overlaps {
		return nil, domain.ErrScreeningOverlap
	}

	screening := domain.Screening{
		ID:        screeningID,
		MovieID:   movieID,
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
	}

	if screeningID == 0 {
		err = s.screenings.Create(ctx, &screening)
	} else {
		err = s.screenings.Update(ctx, &screening)
	}

	if err != nil {
		return nil, err
	}

	return &screening, nil
}

// Collisions lists existing screenings whose windows intersect the padded
// [from, to) window in the room. It is the same predicate the write path
// uses, exposed for pre-submission conflict display.
func (s *Scheduler) Collisions(ctx context.Context, roomID int, from, to time.Time) ([]domain.Collision, error) {
	return s.screenings.FindOverlapping(
		ctx,
		roomID,
		from.Add(-s.cleaningBuffer),
		to.Add(s.cleaningBuffer),
		0,
	)
}

// CollisionsForMovie derives the window end from the movie duration and
// delegates to Collisions.
func (s *Scheduler) CollisionsForMovie(ctx context.Context, roomID, movieID int, start time.Time) ([]domain.Collision, error) {
	movie, err := s.movies.GetById(ctx, movieID)
	if err != nil {
		return nil, err
	}

	return s.Collisions(ctx, roomID, start, start.Add(movie.Duration()))
}

func (s *Scheduler) ListScreenings(ctx context.Context) ([]domain.ScreeningListItem, error) {
	return s.screenings.GetAllForList(ctx)
}

// SeatMap returns every seat of the screening's room annotated with
// availability. A seat is unavailable when a ticket was sold for it or an
// active hold claims it; held seats also expose the holder and expiry so
// the seat picker can show them as pending.
func (s *Scheduler) SeatMap(ctx context.Context, screeningID int) ([]domain.SeatStatus, error) {
	screening, err := s.screenings.GetById(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	seats, err := s.seats.GetAllByRoom(ctx, screening.RoomID)
	if err != nil {
		return nil, err
	}

	soldSeatIDs, err := s.orders.SoldSeatsByScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	activeHolds, err := s.holds.FindActiveByScreening(ctx, screeningID, s.now())
	if err != nil {
		return nil, err
	}

	sold := make(map[int]bool, len(soldSeatIDs))
	for _, seatID := range soldSeatIDs {
		sold[seatID] = true
	}

	heldBySeat := make(map[int]domain.Hold, len(activeHolds))
	for _, hold := range activeHolds {
		heldBySeat[hold.SeatID] = hold
	}

	statuses := make([]domain.SeatStatus, len(seats))

	for i, seat := range seats {
		status := domain.SeatStatus{
			SeatID:    seat.ID,
			Row:       seat.Row,
			Number:    seat.Number,
			Available: true,
		}

		if sold[seat.ID] {
			status.Available = false
		} else if hold, ok := heldBySeat[seat.ID]; ok {
			status.Available = false
			userID := hold.UserID
			expiresAt := hold.ExpiresAt
			status.HoldingUserID = &userID
			status.ExpiresAt = &expiresAt
		}

		statuses[i] = status
	}

	return statuses, nil
}
