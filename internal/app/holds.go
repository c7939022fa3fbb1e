package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cinereserve/cinereserve/api"
	"github.com/cinereserve/cinereserve/internal/domain"
)

// CreateHoldHandler grants a TTL-bounded exclusive hold on every requested
// seat, or on none of them. The check against booked seats happens here; the
// check against competing holds happens inside the store's atomic acquire, so
// two concurrent requests for an overlapping seat set can never both win.
func (app *Application) CreateHoldHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showingID, err := app.readIDParam(r, "showingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateHoldRequest

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

	showing, err := app.showingRepo.GetById(r.Context(), showingID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	seats := dedupe(input.Seats)

	var invalid []string
	for _, seat := range seats {
		if !showing.Seats.Contains(seat) {
			invalid = append(invalid, seat)
		}
	}
	if len(invalid) > 0 {
		logger.Warn("hold request rejected: seats outside the showing's seat space", "seats", invalid)
		app.invalidSeatResponse(w, r, invalid)
		return
	}

	bookedSeats, err := app.bookingRepo.BookedSeats(r.Context(), showingID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if conflicts := intersect(seats, bookedSeats); len(conflicts) > 0 {
		logger.Warn("hold request conflict: seats already booked", "seats", conflicts)
		app.seatUnavailableResponse(w, r, conflicts)
		return
	}

	holds, err := app.holdStore.Acquire(r.Context(), showingID, seats, input.HolderId, app.config.HoldTTL)
	if err != nil {
		var unavailable *domain.SeatUnavailableError
		if errors.As(err, &unavailable) {
			logger.Warn("hold request lost the race for seats already held", "seats", unavailable.Seats)
			app.seatUnavailableResponse(w, r, unavailable.Seats)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	// A confirm may have slipped in between the ledger read and the acquire:
	// it deletes its holds only after the booking commits, so a freshly
	// booked seat can look free to Acquire for a moment. Re-reading the
	// ledger after acquiring closes that window.
	bookedSeats, err = app.bookingRepo.BookedSeats(r.Context(), showingID)
	if err != nil {
		app.rollbackHolds(r.Context(), holds)
		app.serverErrorResponse(w, r, err)
		return
	}

	if conflicts := intersect(seats, bookedSeats); len(conflicts) > 0 {
		logger.Warn("hold request conflict: seats booked during acquisition", "seats", conflicts)
		app.rollbackHolds(r.Context(), holds)
		app.seatUnavailableResponse(w, r, conflicts)
		return
	}

	resp := toHoldSetResponse(showingID, input.HolderId, holds, app.config.HoldTTL)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ReleaseHoldsHandler cancels the given holds. Unknown, expired, or already
// consumed holds are ignored, so a repeated cancel succeeds with no effect.
func (app *Application) ReleaseHoldsHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ReleaseHoldsRequest

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

	err = app.holdStore.Release(r.Context(), dedupe(input.HoldIds))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) rollbackHolds(ctx context.Context, holds []domain.SeatHold) {
	ids := make([]string, len(holds))
	for i, hold := range holds {
		ids[i] = hold.ID
	}

	err := app.holdStore.Release(ctx, ids)
	if err != nil {
		// The TTL reclaims them either way.
		app.logger.Error("failed to roll back seat holds", "error", err)
	}
}

func toHoldSetResponse(showingID int, holderID string, holds []domain.SeatHold, ttl time.Duration) api.HoldSetResponse {
	apiHolds := make([]api.Hold, len(holds))
	for i, hold := range holds {
		apiHolds[i] = api.Hold{
			Id:   hold.ID,
			Seat: hold.Seat,
		}
	}

	return api.HoldSetResponse{
		ShowingId: showingID,
		HolderId:  holderID,
		Holds:     apiHolds,
		ExpiresAt: holds[0].ExpiresAt,
		HoldTime:  int(ttl.Seconds()),
	}
}
