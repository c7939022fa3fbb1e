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
	if app.config.OtelCollectorUrl != "" {
		r.Use(otelchi.Middleware("cinereserve-api", otelchi.WithChiRoutes(r)))
	}
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)

	r.Get("/health", app.GetHealth)

	r.Route("/showings/{showingId}", func(r chi.Router) {
		r.Get("/availability", app.GetAvailabilityHandler)
		r.Post("/holds", app.CreateHoldHandler)
	})

	r.Post("/holds/release", app.ReleaseHoldsHandler)
	r.Post("/bookings", app.CreateBookingHandler)
	r.Get("/users/{userId}/bookings", app.GetBookingsOfUserHandler)

	return r
}
