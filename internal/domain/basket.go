package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BasketSummary is the checkout review view: the user's active holds with
// their shared expiry, the screening they belong to, and the ticket types
// available for pricing.
type BasketSummary struct {
	Holds       []Hold
	Screening   *Screening
	Movie       *Movie
	TicketTypes []TicketType
	ExpiresAt   time.Time
}

// TicketSelection pairs a held seat with the ticket type chosen for it at
// checkout.
type TicketSelection struct {
	SeatID       int
	TicketTypeID int
}

// TicketDocumentLine carries the denormalized data the ticket renderer
// needs for one ticket.
type TicketDocumentLine struct {
	MovieTitle string
	RoomName   string
	StartTime  time.Time
	SeatRow    int
	SeatNumber int
	TicketType string
	Price      decimal.Decimal
}

// TicketRenderer produces the printable ticket document for a finalized
// order. It runs after commit as a best-effort side effect.
type TicketRenderer interface {
	Render(orderReference string, lines []TicketDocumentLine) ([]byte, error)
}
