// Package api defines the request and response types of the reservation
// HTTP surface. The types are hand-maintained and shared between the
// handlers and the test suites.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type SeatLockRequest struct {
	SeatId      int `json:"seatId" validate:"required,gt=0"`
	ScreeningId int `json:"screeningId" validate:"required,gt=0"`
}

type SeatLockResponse struct {
	Id          int       `json:"id"`
	SeatId      int       `json:"seatId"`
	ScreeningId int       `json:"screeningId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type SeatStatus struct {
	SeatId        int        `json:"seatId"`
	Row           int        `json:"row"`
	Number        int        `json:"number"`
	Available     bool       `json:"available"`
	HoldingUserId *int       `json:"holdingUserId,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

type SeatMapResponse struct {
	ScreeningId int          `json:"screeningId"`
	Seats       []SeatStatus `json:"seats"`
}

type ScreeningRequest struct {
	MovieId   int       `json:"movieId" validate:"required,gt=0"`
	RoomId    int       `json:"roomId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

type ScreeningResponse struct {
	Id        int       `json:"id"`
	MovieId   int       `json:"movieId"`
	RoomId    int       `json:"roomId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type ScreeningListItem struct {
	Id         int       `json:"id"`
	MovieTitle string    `json:"movieTitle"`
	RoomName   string    `json:"roomName"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
}

type ScreeningListResponse struct {
	Screenings []ScreeningListItem `json:"screenings"`
}

type Collision struct {
	MovieTitle              string    `json:"movieTitle"`
	RoomName                string    `json:"roomName"`
	ScreeningTime           time.Time `json:"screeningTime"`
	EndTime                 time.Time `json:"endTime"`
	CleaningDurationMinutes int       `json:"cleaningDurationMinutes"`
}

type CollisionsResponse struct {
	Collisions []Collision `json:"collisions"`
}

type HoldSummary struct {
	Id          int       `json:"id"`
	SeatId      int       `json:"seatId"`
	ScreeningId int       `json:"screeningId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type TicketType struct {
	Id    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type BookingSummaryResponse struct {
	MovieTitle    string        `json:"movieTitle"`
	ScreeningTime time.Time     `json:"screeningTime"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	Holds         []HoldSummary `json:"holds"`
	TicketTypes   []TicketType  `json:"ticketTypes"`
}

type TicketSelection struct {
	SeatId       int `json:"seatId" validate:"required,gt=0"`
	TicketTypeId int `json:"ticketTypeId" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Tickets []TicketSelection `json:"tickets" validate:"required,min=1,max=8,dive"`
}

type CheckoutResponse struct {
	OrderId int `json:"orderId"`
}

type Ticket struct {
	Id           int             `json:"id"`
	SeatId       int             `json:"seatId"`
	ScreeningId  int             `json:"screeningId"`
	TicketTypeId int             `json:"ticketTypeId"`
	Price        decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	Id        int             `json:"id"`
	Reference string          `json:"reference"`
	TotalCost decimal.Decimal `json:"totalCost"`
	CreatedAt time.Time       `json:"createdAt"`
	Tickets   []Ticket        `json:"tickets"`
}

type OrderSummary struct {
	Id        int             `json:"id"`
	Reference string          `json:"reference"`
	TotalCost decimal.Decimal `json:"totalCost"`
	CreatedAt time.Time       `json:"createdAt"`
}

type OrderListResponse struct {
	Orders []OrderSummary `json:"orders"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
