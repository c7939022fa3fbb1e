package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrEmptySelection    = errors.New("no seats selected")
	ErrHoldExpired       = errors.New("one or more holds have expired, please select your seats again")
	ErrSeatAlreadyBooked = errors.New("seat(s) are already booked")
	ErrHoldShowingMixed  = errors.New("holds belong to different showings")
)

// SeatUnavailableError reports which requested seats were already held or
// booked. The whole request fails; no partial hold is ever granted.
type SeatUnavailableError struct {
	Seats []string
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seat(s) not available: %s", strings.Join(e.Seats, ", "))
}

// InvalidSeatError reports seat identifiers outside the showing's seat space.
type InvalidSeatError struct {
	Seats []string
}

func (e *InvalidSeatError) Error() string {
	return fmt.Sprintf("invalid seat(s) for this showing: %s", strings.Join(e.Seats, ", "))
}
