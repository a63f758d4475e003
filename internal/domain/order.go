package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TicketType is the external pricing reference. The core only ever reads it.
type TicketType struct {
	ID    int
	Name  string
	Price decimal.Decimal
}

// Ticket is created exactly once when an order is finalized and is never
// mutated afterwards. Its price is fixed at issuance.
type Ticket struct {
	ID           int
	OrderID      int
	ScreeningID  int
	SeatID       int
	TicketTypeID int
	Price        decimal.Decimal
}

type Order struct {
	ID        int
	Reference string
	UserID    int
	TotalCost decimal.Decimal
	CreatedAt time.Time
	Tickets   []Ticket
}

type OrderRepository interface {
	// CreateWithTickets persists the order, its tickets, and the deletion of
	// the consumed holds as one atomic unit. If any consumed hold is already
	// gone the whole transaction aborts with ErrHoldExpired; a duplicate
	// ticket for a (screening, seat) pair aborts with ErrSeatAlreadyReserved.
	CreateWithTickets(ctx context.Context, order *Order, consumedHoldIDs []int) error
	GetWithTickets(ctx context.Context, orderID int) (*Order, error)
	GetAllByUser(ctx context.Context, userID int) ([]Order, error)
	SoldSeatsByScreening(ctx context.Context, screeningID int) ([]int, error)
}

type TicketTypeRepository interface {
	GetAll(ctx context.Context) ([]TicketType, error)
	GetById(ctx context.Context, id int) (*TicketType, error)
}
