package app

import (
	"errors"
	"net/http"

	"github.com/kinoteka/cinema-reservation-system/api"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

func (app *Application) GetSeatMapByScreeningHandler(w http.ResponseWriter, r *http.Request) {
	screeningId, err := readIDParam(r, "screeningId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats, err := app.scheduler.SeatMap(r.Context(), screeningId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := toSeatMapResponse(screeningId, seats)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(screeningId int, seats []domain.SeatStatus) api.SeatMapResponse {
	resp := api.SeatMapResponse{
		ScreeningId: screeningId,
		Seats:       make([]api.SeatStatus, len(seats)),
	}

	for i, v := range seats {
		resp.Seats[i] = api.SeatStatus{
			SeatId:        v.SeatID,
			Row:           v.Row,
			Number:        v.Number,
			Available:     v.Available,
			HoldingUserId: v.HoldingUserID,
			ExpiresAt:     v.ExpiresAt,
		}
	}

	return resp
}
