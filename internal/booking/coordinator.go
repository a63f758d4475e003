// Package booking contains the reservation core: hold coordination,
// screening scheduling, order finalization, and expired-hold sweeping.
// All state lives in the storage layer; the services here recompute what
// they need per request instead of caching basket objects in memory.
package booking

import (
	"context"
	"time"

	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

const DefaultHoldTTL = 15 * time.Minute

// Coordinator manages a user's basket of seat holds. Creating a hold
// re-aligns the expiry of every other hold the user has, so the whole
// basket always expires together and a checkout never fails because one
// seat silently lapsed before the others.
type Coordinator struct {
	holds       domain.HoldRepository
	screenings  domain.ScreeningRepository
	movies      domain.MovieRepository
	ticketTypes domain.TicketTypeRepository
	holdTTL     time.Duration
	now         func() time.Time
}

func NewCoordinator(
	holds domain.HoldRepository,
	screenings domain.ScreeningRepository,
	movies domain.MovieRepository,
	ticketTypes domain.TicketTypeRepository,
	holdTTL time.Duration) *Coordinator {

	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}

	return &Coordinator{
		holds:       holds,
		screenings:  screenings,
		movies:      movies,
		ticketTypes: ticketTypes,
		holdTTL:     holdTTL,
		now:         time.Now,
	}
}

// CreateHold acquires a hold on the seat and extends the user's whole
// basket to a single fresh expiry. On domain.ErrSeatAlreadyReserved the
// conflict propagates unchanged; the caller must pick a different seat.
func (c *Coordinator) CreateHold(ctx context.Context, userID, seatID, screeningID int) (*domain.Hold, error) {
	now := c.now()

	hold, err := c.holds.TryAcquire(ctx, seatID, screeningID, userID, now, c.holdTTL)
	if err != nil {
		return nil, err
	}

	basket, err := c.holds.FindActiveByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	holdIDs := make([]int, 0, len(basket)+1)
	holdIDs = append(holdIDs, hold.ID)
	for _, h := range basket {
		if h.ID != hold.ID {
			holdIDs = append(holdIDs, h.ID)
		}
	}

	err = c.holds.Extend(ctx, holdIDs, hold.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return hold, nil
}

// DeleteHold releases every hold the user has on the (seat, screening)
// pair. domain.ErrRecordNotFound surfaces when nothing was held.
func (c *Coordinator) DeleteHold(ctx context.Context, userID, seatID, screeningID int) error {
	return c.holds.Release(ctx, seatID, screeningID, userID)
}

// PrepareSummary loads the user's basket for checkout review, re-arming the
// TTL on every hold so the seats stay claimed while the user picks ticket
// types. Fails with domain.ErrEmptyBasket when the user holds nothing.
func (c *Coordinator) PrepareSummary(ctx context.Context, userID int) (*domain.BasketSummary, error) {
	now := c.now()

	basket, err := c.holds.FindActiveByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	if len(basket) == 0 {
		return nil, domain.ErrEmptyBasket
	}

	newExpiry := now.Add(c.holdTTL)

	holdIDs := make([]int, len(basket))
	for i, h := range basket {
		holdIDs[i] = h.ID
	}

	err = c.holds.Extend(ctx, holdIDs, newExpiry)
	if err != nil {
		return nil, err
	}

	for i := range basket {
		basket[i].ExpiresAt = newExpiry
	}

	// A basket always belongs to a single screening in practice, so the
	// first hold determines which screening and movie to present.
	screening, err := c.screenings.GetById(ctx, basket[0].ScreeningID)
	if err != nil {
		return nil, err
	}

	movie, err := c.movies.GetById(ctx, screening.MovieID)
	if err != nil {
		return nil, err
	}

	ticketTypes, err := c.ticketTypes.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.BasketSummary{
		Holds:       basket,
		Screening:   screening,
		Movie:       movie,
		TicketTypes: ticketTypes,
		ExpiresAt:   newExpiry,
	}, nil
}
