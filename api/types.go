// Package api defines the JSON wire types of the reservation API.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateHoldRequest struct {
	HolderId string   `json:"holderId" validate:"required,max=64"`
	Seats    []string `json:"seats" validate:"required,min=1,max=10,dive,seat_id"`
}

type Hold struct {
	Id   string `json:"id"`
	Seat string `json:"seat"`
}

type HoldSetResponse struct {
	ShowingId int       `json:"showingId"`
	HolderId  string    `json:"holderId"`
	Holds     []Hold    `json:"holds"`
	ExpiresAt time.Time `json:"expiresAt"`
	// HoldTime is the hold's time-to-live in seconds.
	HoldTime int `json:"holdTime"`
}

type ReleaseHoldsRequest struct {
	HoldIds []string `json:"holdIds" validate:"required,min=1,max=10,dive,required"`
}

type CreateBookingRequest struct {
	UserId  string   `json:"userId" validate:"required,max=64"`
	HoldIds []string `json:"holdIds" validate:"required,min=1,max=10,dive,required"`
}

type BookingResponse struct {
	Id          int             `json:"id"`
	ShowingId   int             `json:"showingId"`
	UserId      string          `json:"userId"`
	Seats       []string        `json:"seats"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type BookingSummary struct {
	Id          int             `json:"id"`
	MovieTitle  string          `json:"movieTitle"`
	TheatreName string          `json:"theatreName"`
	ScreenName  string          `json:"screenName"`
	Date        time.Time       `json:"date"`
	Seats       []string        `json:"seats"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type UserBookingsResponse struct {
	Bookings []BookingSummary `json:"bookings"`
	Metadata Metadata         `json:"metadata"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type AvailabilityResponse struct {
	ShowingId   int      `json:"showingId"`
	BookedSeats []string `json:"bookedSeats"`
	HeldSeats   []string `json:"heldSeats"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
	// Conflicts names the seats that caused a conflict response, so the
	// caller can re-fetch availability and re-select.
	Conflicts []string `json:"conflicts,omitempty"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}
