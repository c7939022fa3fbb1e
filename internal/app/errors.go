package app

import (
	"net/http"
	"time"

	"github.com/cinereserve/cinereserve/api"
	appvalidator "github.com/cinereserve/cinereserve/internal/validator"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	ErrInternalServer   = "The server encountered a problem and could not process your request"
	ErrNotFound         = "The requested resource not found"
	ErrValidationFailed = "The request contains invalid fields"
	ErrSeatsUnavailable = "Some of the selected seats are no longer available"
	ErrHoldsExpired     = "Your seat holds have expired, please select your seats again"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.conflictAwareErrorResponse(w, r, status, message, nil)
}

func (app *Application) conflictAwareErrorResponse(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	conflicts []string) {

	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
		Conflicts: conflicts,
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// seatUnavailableResponse names the conflicting seats so the caller can
// re-fetch availability and re-select rather than blind-retry.
func (app *Application) seatUnavailableResponse(w http.ResponseWriter, r *http.Request, conflicts []string) {
	app.conflictAwareErrorResponse(w, r, http.StatusConflict, ErrSeatsUnavailable, conflicts)
}

func (app *Application) holdExpiredResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusConflict, ErrHoldsExpired)
}

func (app *Application) invalidSeatResponse(w http.ResponseWriter, r *http.Request, seats []string) {
	app.conflictAwareErrorResponse(w, r, http.StatusBadRequest, "Some of the selected seats do not exist for this showing", seats)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		app.serverErrorResponse(w, r, err)
		return
	}

	issues := make([]api.ValidationError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		issues = append(issues, api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrValidationFailed,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: issues,
	}

	writeErr := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}
