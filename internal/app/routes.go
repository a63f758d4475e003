package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-reservation-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/screenings", func(r chi.Router) {
		r.Get("/", app.ListScreeningsHandler)
		r.Get("/collisions", app.GetScreeningCollisionsHandler)
		r.Get("/check", app.CheckRoomAvailabilityHandler)
		r.Get("/{screeningId}/seats", app.GetSeatMapByScreeningHandler)

		r.With(app.requireAuthentication).Post("/", app.CreateScreeningHandler)
		r.With(app.requireAuthentication).Put("/{screeningId}", app.UpdateScreeningHandler)
	})

	r.With(app.requireAuthentication).Route("/seat-locks", func(r chi.Router) {
		r.Post("/", app.CreateSeatLockHandler)
		r.Delete("/", app.DeleteSeatLockHandler)
	})

	r.With(app.requireAuthentication).Route("/booking", func(r chi.Router) {
		r.Get("/summary", app.GetBookingSummaryHandler)
		r.Post("/checkout", app.CheckoutHandler)
	})

	r.With(app.requireAuthentication).Route("/orders", func(r chi.Router) {
		r.Get("/", app.GetOrdersHandler)
		r.Get("/{orderId}", app.GetOrderHandler)
	})

	return r
}
