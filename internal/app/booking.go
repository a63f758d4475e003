package app

import (
	"errors"
	"net/http"

	"github.com/kinoteka/cinema-reservation-system/api"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

// GetBookingSummaryHandler returns the user's current basket of held seats.
// Visiting the summary re-arms every hold with a fresh full TTL, so the user
// always gets the complete window to finish the purchase.
func (app *Application) GetBookingSummaryHandler(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	summary, err := app.coordinator.PrepareSummary(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyBasket):
			app.unprocessableEntityResponse(w, r, ErrEmptyBasket)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := toBookingSummaryResponse(summary)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CheckoutRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	selections := make([]domain.TicketSelection, len(input.Tickets))
	for i, v := range input.Tickets {
		selections[i] = domain.TicketSelection{
			SeatID:       v.SeatId,
			TicketTypeID: v.TicketTypeId,
		}
	}

	orderId, err := app.finalizer.FinalizeOrder(r.Context(), userId, selections)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHoldExpired):
			logger.Info("checkout rejected, holds lapsed", "user_id", userId)
			app.conflictResponse(w, r, ErrHoldLapsed)
		case errors.Is(err, domain.ErrSeatAlreadyReserved):
			app.conflictResponse(w, r, ErrSeatTaken)
		case errors.Is(err, domain.ErrEmptyBasket):
			app.unprocessableEntityResponse(w, r, ErrEmptyBasket)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.CheckoutResponse{OrderId: orderId}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingSummaryResponse(summary *domain.BasketSummary) api.BookingSummaryResponse {
	resp := api.BookingSummaryResponse{
		MovieTitle:    summary.Movie.Title,
		ScreeningTime: summary.Screening.StartTime,
		ExpiresAt:     summary.ExpiresAt,
		Holds:         make([]api.HoldSummary, len(summary.Holds)),
		TicketTypes:   make([]api.TicketType, len(summary.TicketTypes)),
	}

	for i, v := range summary.Holds {
		resp.Holds[i] = api.HoldSummary{
			Id:          v.ID,
			SeatId:      v.SeatID,
			ScreeningId: v.ScreeningID,
			ExpiresAt:   v.ExpiresAt,
		}
	}

	for i, v := range summary.TicketTypes {
		resp.TicketTypes[i] = api.TicketType{
			Id:    v.ID,
			Name:  v.Name,
			Price: v.Price,
		}
	}

	return resp
}
