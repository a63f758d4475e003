package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kinoteka/cinema-reservation-system/api"
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

func (app *Application) ListScreeningsHandler(w http.ResponseWriter, r *http.Request) {
	screenings, err := app.scheduler.ListScreenings(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScreeningListResponse{
		Screenings: make([]api.ScreeningListItem, len(screenings)),
	}

	for i, v := range screenings {
		resp.Screenings[i] = api.ScreeningListItem{
			Id:         v.ID,
			MovieTitle: v.MovieTitle,
			RoomName:   v.RoomName,
			StartTime:  v.StartTime,
			EndTime:    v.EndTime,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateScreeningHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.ScreeningRequest

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

	screening, err := app.scheduler.CreateScreening(r.Context(), input.MovieId, input.RoomId, input.StartTime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScreeningOverlap):
			logger.Info("screening overlap", "room_id", input.RoomId, "start_time", input.StartTime)
			app.conflictResponse(w, r, ErrScreeningConflict)
		case errors.Is(err, domain.ErrScreeningDateInPast):
			app.unprocessableEntityResponse(w, r, ErrScreeningInPast)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScreeningResponse(screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateScreeningHandler(w http.ResponseWriter, r *http.Request) {
	screeningId, err := readIDParam(r, "screeningId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ScreeningRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	screening, err := app.scheduler.UpdateScreening(r.Context(), screeningId, input.MovieId, input.RoomId, input.StartTime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScreeningOverlap):
			app.conflictResponse(w, r, ErrScreeningConflict)
		case errors.Is(err, domain.ErrScreeningDateInPast):
			app.unprocessableEntityResponse(w, r, ErrScreeningInPast)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreeningResponse(screening), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetScreeningCollisionsHandler reports the screenings a prospective
// screening of the given movie would clash with, cleaning time included.
func (app *Application) GetScreeningCollisionsHandler(w http.ResponseWriter, r *http.Request) {
	movieId, err := readQueryInt(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	roomId, err := readQueryInt(r, "roomId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	startTime, err := readQueryTime(r, "startTime")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	collisions, err := app.scheduler.CollisionsForMovie(r.Context(), roomId, movieId, startTime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, app.toCollisionsResponse(collisions), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CheckRoomAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	roomId, err := readQueryInt(r, "roomId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	from, err := readQueryTime(r, "from")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	to, err := readQueryTime(r, "to")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !to.After(from) {
		app.badRequestResponse(w, r, fmt.Errorf("to must be after from"))
		return
	}

	collisions, err := app.scheduler.Collisions(r.Context(), roomId, from, to)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, app.toCollisionsResponse(collisions), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) toCollisionsResponse(collisions []domain.Collision) api.CollisionsResponse {
	resp := api.CollisionsResponse{
		Collisions: make([]api.Collision, len(collisions)),
	}

	cleaningMinutes := int(app.scheduler.CleaningBuffer().Minutes())

	for i, v := range collisions {
		resp.Collisions[i] = api.Collision{
			MovieTitle:              v.MovieTitle,
			RoomName:                v.RoomName,
			ScreeningTime:           v.StartTime,
			EndTime:                 v.EndTime,
			CleaningDurationMinutes: cleaningMinutes,
		}
	}

	return resp
}

func toScreeningResponse(screening *domain.Screening) api.ScreeningResponse {
	return api.ScreeningResponse{
		Id:        screening.ID,
		MovieId:   screening.MovieID,
		RoomId:    screening.RoomID,
		StartTime: screening.StartTime,
		EndTime:   screening.EndTime,
	}
}

func readQueryInt(r *http.Request, name string) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 0, fmt.Errorf("missing %s query parameter", name)
	}

	id, err := parsePositiveInt(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s query parameter", name)
	}

	return id, nil
}

func readQueryTime(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, fmt.Errorf("missing %s query parameter", name)
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s query parameter, expected RFC 3339", name)
	}

	return t, nil
}
