package domain

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Showing struct {
	ID          int
	MovieTitle  string
	TheatreName string
	ScreenName  string
	StartTime   time.Time
	Price       decimal.Decimal
	Seats       SeatSpace
}

// SeatSpace is the legal seat identifier space of a screen, derived from its
// row and column counts. Seats are named by row letter and 1-based column
// number, e.g. "A1" or "J12".
type SeatSpace struct {
	Rows int
	Cols int
}

func (s SeatSpace) Size() int {
	return s.Rows * s.Cols
}

// Contains reports whether the given seat identifier names a seat within this
// space. Identifiers are case-sensitive: rows are uppercase letters.
func (s SeatSpace) Contains(seat string) bool {
	row, col, err := ParseSeatID(seat)
	if err != nil {
		return false
	}

	return row <= s.Rows && col <= s.Cols
}

// ParseSeatID splits a seat identifier like "B5" into its 1-based row and
// column numbers.
func ParseSeatID(seat string) (row, col int, err error) {
	if len(seat) < 2 {
		return 0, 0, fmt.Errorf("seat identifier %q is too short", seat)
	}

	r := seat[0]
	if r < 'A' || r > 'Z' {
		return 0, 0, fmt.Errorf("seat identifier %q must start with a row letter A-Z", seat)
	}
	row = int(r-'A') + 1

	col, convErr := strconv.Atoi(seat[1:])
	if convErr != nil || col < 1 {
		return 0, 0, fmt.Errorf("seat identifier %q must end with a positive column number", seat)
	}

	return row, col, nil
}

type ShowingRepository interface {
	GetById(ctx context.Context, showingID int) (*Showing, error)
}
