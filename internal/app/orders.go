package app

import (
	"errors"
	"net/http"

	"github.com/kinoteka/cinema-reservation-system/api"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

func (app *Application) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderId, err := readIDParam(r, "orderId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	order, err := app.finalizer.GetOrderSummary(r.Context(), orderId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrNotPermitted):
			app.forbiddenAccessResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toOrderResponse(order), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	orders, err := app.finalizer.OrdersByUser(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.OrderListResponse{
		Orders: make([]api.OrderSummary, len(orders)),
	}

	for i, v := range orders {
		resp.Orders[i] = api.OrderSummary{
			Id:        v.ID,
			Reference: v.Reference,
			TotalCost: v.TotalCost,
			CreatedAt: v.CreatedAt,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toOrderResponse(order *domain.Order) api.OrderResponse {
	resp := api.OrderResponse{
		Id:        order.ID,
		Reference: order.Reference,
		TotalCost: order.TotalCost,
		CreatedAt: order.CreatedAt,
		Tickets:   make([]api.Ticket, len(order.Tickets)),
	}

	for i, v := range order.Tickets {
		resp.Tickets[i] = api.Ticket{
			Id:           v.ID,
			SeatId:       v.SeatID,
			ScreeningId:  v.ScreeningID,
			TicketTypeId: v.TicketTypeID,
			Price:        v.Price,
		}
	}

	return resp
}
