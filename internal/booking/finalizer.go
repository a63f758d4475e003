package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
	"github.com/kinoteka/cinema-reservation-system/internal/mailer"
	"github.com/shopspring/decimal"
)

// Finalizer converts a basket of holds into a permanent order with tickets.
// The conversion is atomic: order, tickets, and the deletion of the consumed
// holds commit together or not at all. Ticket delivery (PDF + mail) runs
// after commit and can never undo a committed order.
type Finalizer struct {
	holds       domain.HoldRepository
	orders      domain.OrderRepository
	ticketTypes domain.TicketTypeRepository
	users       domain.UserDirectory
	screenings  domain.ScreeningRepository
	movies      domain.MovieRepository
	rooms       domain.RoomRepository
	seats       domain.SeatRepository
	renderer    domain.TicketRenderer
	mailer      mailer.Mailer
	logger      *slog.Logger
	now         func() time.Time
}

func NewFinalizer(
	holds domain.HoldRepository,
	orders domain.OrderRepository,
	ticketTypes domain.TicketTypeRepository,
	users domain.UserDirectory,
	screenings domain.ScreeningRepository,
	movies domain.MovieRepository,
	rooms domain.RoomRepository,
	seats domain.SeatRepository,
	renderer domain.TicketRenderer,
	mailer mailer.Mailer,
	logger *slog.Logger) *Finalizer {

	return &Finalizer{
		holds:       holds,
		orders:      orders,
		ticketTypes: ticketTypes,
		users:       users,
		screenings:  screenings,
		movies:      movies,
		rooms:       rooms,
		seats:       seats,
		renderer:    renderer,
		mailer:      mailer,
		logger:      logger,
		now:         time.Now,
	}
}

// FinalizeOrder validates that every selected seat is still held by the
// user, prices the tickets, and commits the order. If any hold lapsed
// (or never existed) it fails with domain.ErrHoldExpired and persists
// nothing. Returns the id of the new order.
func (f *Finalizer) FinalizeOrder(ctx context.Context, userID int, selections []domain.TicketSelection) (int, error) {
	if len(selections) == 0 {
		return 0, domain.ErrEmptyBasket
	}

	now := f.now()

	seatIDs := make([]int, len(selections))
	for i, sel := range selections {
		seatIDs[i] = sel.SeatID
	}

	// The active-hold check is re-derived from storage here, never from
	// state read earlier in the request. If a concurrent sweep or finalize
	// got to a hold first, the count mismatch surfaces it.
	holds, err := f.holds.FindActiveByUserAndSeats(ctx, userID, seatIDs, now)
	if err != nil {
		return 0, err
	}

	if len(holds) != len(selections) {
		f.logger.Warn(
			"order finalization aborted: basket mismatch",
			"user_id", userID,
			"requested", len(selections),
			"held", len(holds),
		)

		return 0, domain.ErrHoldExpired
	}

	holdsBySeat := make(map[int]domain.Hold, len(holds))
	for _, h := range holds {
		holdsBySeat[h.SeatID] = h
	}

	order := domain.Order{
		Reference: uuid.New().String(),
		UserID:    userID,
		TotalCost: decimal.Zero,
	}

	consumedHoldIDs := make([]int, 0, len(holds))

	for _, sel := range selections {
		hold, ok := holdsBySeat[sel.SeatID]
		if !ok {
			return 0, domain.ErrHoldExpired
		}

		ticketType, err := f.ticketTypes.GetById(ctx, sel.TicketTypeID)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve ticket type %d: %w", sel.TicketTypeID, err)
		}

		order.Tickets = append(order.Tickets, domain.Ticket{
			ScreeningID:  hold.ScreeningID,
			SeatID:       hold.SeatID,
			TicketTypeID: ticketType.ID,
			Price:        ticketType.Price,
		})
		order.TotalCost = order.TotalCost.Add(ticketType.Price)
		consumedHoldIDs = append(consumedHoldIDs, hold.ID)
	}

	err = f.orders.CreateWithTickets(ctx, &order, consumedHoldIDs)
	if err != nil {
		return 0, err
	}

	f.deliverTickets(ctx, userID, &order)

	return order.ID, nil
}

// GetOrderSummary loads an order for display. Orders are strictly private:
// a user id mismatch yields domain.ErrNotPermitted.
func (f *Finalizer) GetOrderSummary(ctx context.Context, orderID, userID int) (*domain.Order, error) {
	order, err := f.orders.GetWithTickets(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, domain.ErrNotPermitted
	}

	return order, nil
}

func (f *Finalizer) OrdersByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return f.orders.GetAllByUser(ctx, userID)
}

// deliverTickets renders the ticket PDF and mails it to the buyer. It runs
// strictly after the order committed; any failure here is logged and the
// order stands.
func (f *Finalizer) deliverTickets(ctx context.Context, userID int, order *domain.Order) {
	user, err := f.users.GetById(ctx, userID)
	if err != nil {
		f.logger.Error("ticket delivery skipped: user lookup failed", "order_id", order.ID, "error", err)
		return
	}

	lines, err := f.buildDocumentLines(ctx, order)
	if err != nil {
		f.logger.Error("ticket delivery skipped: document data lookup failed", "order_id", order.ID, "error", err)
		return
	}

	pdfBytes, err := f.renderer.Render(order.Reference, lines)
	if err != nil {
		f.logger.Error("ticket PDF rendering failed", "order_id", order.ID, "error", err)
		return
	}

	filename := fmt.Sprintf("tickets_order_%d.pdf", order.ID)

	err = f.mailer.SendWithAttachment(
		user.Email,
		"Your Cinema Tickets",
		"Your cinema tickets are attached.",
		pdfBytes,
		filename,
	)
	if err != nil {
		f.logger.Error("ticket email delivery failed", "order_id", order.ID, "recipient", user.Email, "error", err)
		return
	}

	f.logger.Info("tickets delivered", "order_id", order.ID, "recipient", user.Email)
}

func (f *Finalizer) buildDocumentLines(ctx context.Context, order *domain.Order) ([]domain.TicketDocumentLine, error) {
	lines := make([]domain.TicketDocumentLine, 0, len(order.Tickets))

	ticketTypeNames := make(map[int]string)

	for _, ticket := range order.Tickets {
		screening, err := f.screenings.GetById(ctx, ticket.ScreeningID)
		if err != nil {
			return nil, err
		}

		movie, err := f.movies.GetById(ctx, screening.MovieID)
		if err != nil {
			return nil, err
		}

		room, err := f.rooms.GetById(ctx, screening.RoomID)
		if err != nil {
			return nil, err
		}

		seat, err := f.seats.GetById(ctx, ticket.SeatID)
		if err != nil {
			return nil, err
		}

		typeName, ok := ticketTypeNames[ticket.TicketTypeID]
		if !ok {
			ticketType, err := f.ticketTypes.GetById(ctx, ticket.TicketTypeID)
			if err != nil {
				return nil, err
			}

			typeName = ticketType.Name
			ticketTypeNames[ticket.TicketTypeID] = typeName
		}

		lines = append(lines, domain.TicketDocumentLine{
			MovieTitle: movie.Title,
			RoomName:   room.Name,
			StartTime:  screening.StartTime,
			SeatRow:    seat.Row,
			SeatNumber: seat.Number,
			TicketType: typeName,
			Price:      ticket.Price,
		})
	}

	return lines, nil
}
