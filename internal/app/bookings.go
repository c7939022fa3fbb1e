package app

import (
	"errors"
	"net/http"

	"github.com/cinereserve/cinereserve/api"
	"github.com/cinereserve/cinereserve/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// CreateBookingHandler promotes a set of holds into a permanent booking. The
// holds must all be alive and belong to one showing; the booking write itself
// is guarded by a unique constraint, so even a racing writer that bypassed the
// hold mechanism cannot double-sell a seat. The consumed holds are deleted
// only after the booking commits — on any failure they stay intact and the
// caller may retry.
func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

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

	holdIDs := dedupe(input.HoldIds)

	holds, err := app.holdStore.GetByIds(r.Context(), holdIDs)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(holds) != len(holdIDs) {
		logger.Warn("booking rejected: holds expired or unknown",
			"requested", len(holdIDs), "alive", len(holds))
		app.holdExpiredResponse(w, r)
		return
	}

	showingID := holds[0].ShowingID
	seats := make([]string, len(holds))
	for i, hold := range holds {
		if hold.ShowingID != showingID {
			app.badRequestResponse(w, r, domain.ErrHoldShowingMixed)
			return
		}
		seats[i] = hold.Seat
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

	totalAmount := showing.Price.Mul(decimal.NewFromInt(int64(len(seats))))

	booking, err := app.bookingRepo.Create(r.Context(), domain.Booking{
		ShowingID:   showingID,
		UserID:      input.UserId,
		Seats:       seats,
		TotalAmount: totalAmount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSeatAlreadyBooked) {
			conflicts, lookupErr := app.bookedConflicts(r, showingID, seats)
			if lookupErr != nil {
				app.serverErrorResponse(w, r, lookupErr)
				return
			}

			logger.Warn("booking rejected: seats booked outside the hold flow", "seats", conflicts)
			app.seatUnavailableResponse(w, r, conflicts)
			return
		}

		// Holds are untouched; the caller can safely retry the confirm.
		app.serverErrorResponse(w, r, err)
		return
	}

	// Consume the holds. If this fails the booking still stands and the
	// leftover holds expire on their own.
	err = app.holdStore.Release(r.Context(), holdIDs)
	if err != nil {
		logger.Error("failed to release consumed holds", "error", err)
	}

	resp := toBookingResponse(booking)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) bookedConflicts(r *http.Request, showingID int, seats []string) ([]string, error) {
	bookedSeats, err := app.bookingRepo.BookedSeats(r.Context(), showingID)
	if err != nil {
		return nil, err
	}

	return intersect(seats, bookedSeats), nil
}

func (app *Application) GetBookingsOfUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		app.badRequestResponse(w, r, errors.New("user ID must not be empty"))
		return
	}

	pagination, err := paginationFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	summaries, metadata, err := app.bookingRepo.GetSummariesByUserId(r.Context(), userID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserBookingsResponse{
		Bookings: toBookingSummaries(summaries),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func paginationFromQuery(r *http.Request) (domain.Pagination, error) {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	var err error

	if page := r.URL.Query().Get("page"); page != "" {
		pagination.Page, err = parsePositiveInt("page", page)
		if err != nil {
			return pagination, err
		}
	}

	if pageSize := r.URL.Query().Get("pageSize"); pageSize != "" {
		pagination.PageSize, err = parsePositiveInt("pageSize", pageSize)
		if err != nil {
			return pagination, err
		}
		if pagination.PageSize > MaxPageSize {
			pagination.PageSize = MaxPageSize
		}
	}

	return pagination, nil
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:          booking.ID,
		ShowingId:   booking.ShowingID,
		UserId:      booking.UserID,
		Seats:       booking.Seats,
		TotalAmount: booking.TotalAmount,
		CreatedAt:   booking.CreatedAt,
	}
}

func toBookingSummaries(summaries []domain.BookingSummary) []api.BookingSummary {
	apiSummaries := make([]api.BookingSummary, len(summaries))

	for i, v := range summaries {
		apiSummaries[i] = api.BookingSummary{
			Id:          v.BookingID,
			MovieTitle:  v.MovieTitle,
			TheatreName: v.TheatreName,
			ScreenName:  v.ScreenName,
			Date:        v.StartTime,
			Seats:       v.Seats,
			TotalAmount: v.TotalAmount,
			CreatedAt:   v.CreatedAt,
		}
	}

	return apiSummaries
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
