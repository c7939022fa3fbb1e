package app

import (
	"errors"
	"net/http"
	"sort"

	"github.com/cinereserve/cinereserve/api"
	"github.com/cinereserve/cinereserve/internal/domain"
)

// GetAvailabilityHandler reports the showing's booked and actively held seats
// so the caller can render a seat map. Expired holds never appear: the store
// filters them out even when their bookkeeping has not been purged yet.
func (app *Application) GetAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	showingID, err := app.readIDParam(r, "showingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.showingRepo.GetById(r.Context(), showingID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	bookedSeats, err := app.bookingRepo.BookedSeats(r.Context(), showingID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	held, err := app.holdStore.HeldSeats(r.Context(), showingID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	heldSeats := make([]string, 0, len(held))
	for seat := range held {
		heldSeats = append(heldSeats, seat)
	}

	sort.Strings(bookedSeats)
	sort.Strings(heldSeats)

	resp := api.AvailabilityResponse{
		ShowingId:   showingID,
		BookedSeats: bookedSeats,
		HeldSeats:   heldSeats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
