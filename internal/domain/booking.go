package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Booking is a durable, immutable record of seats sold to a user for a
// showing. The set of seats across all bookings of a showing is pairwise
// disjoint; the persistence layer enforces this with a unique constraint on
// (showing, seat).
type Booking struct {
	ID          int
	ShowingID   int
	UserID      string
	Seats       []string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

type BookingSummary struct {
	BookingID   int
	MovieTitle  string
	TheatreName string
	ScreenName  string
	StartTime   time.Time
	Seats       []string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

type BookingRepository interface {
	// Create writes the booking and its seats in one transaction. It returns
	// ErrSeatAlreadyBooked when any seat is already part of another booking
	// of the same showing.
	Create(ctx context.Context, booking Booking) (*Booking, error)

	// BookedSeats returns every seat of the showing that belongs to a
	// committed booking.
	BookedSeats(ctx context.Context, showingID int) ([]string, error)

	GetSummariesByUserId(ctx context.Context, userID string, pagination Pagination) ([]BookingSummary, *Metadata, error)
}
