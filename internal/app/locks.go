package app

import (
	"errors"
	"net/http"

	"github.com/kinoteka/cinema-reservation-system/api"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

func (app *Application) CreateSeatLockHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.SeatLockRequest

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

	hold, err := app.coordinator.CreateHold(r.Context(), userId, input.SeatId, input.ScreeningId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyReserved):
			logger.Info("seat lock conflict", "seat_id", input.SeatId, "screening_id", input.ScreeningId)
			app.conflictResponse(w, r, ErrSeatTaken)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SeatLockResponse{
		Id:          hold.ID,
		SeatId:      hold.SeatID,
		ScreeningId: hold.ScreeningID,
		ExpiresAt:   hold.ExpiresAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteSeatLockHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SeatLockRequest

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

	err = app.coordinator.DeleteHold(r.Context(), userId, input.SeatId, input.ScreeningId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusOK)
}
