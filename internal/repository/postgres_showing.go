package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinereserve/cinereserve/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresShowingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowingRepository(db *pgxpool.Pool) *PostgresShowingRepository {
	return &PostgresShowingRepository{
		db: db,
	}
}

func (p *PostgresShowingRepository) GetById(ctx context.Context, showingID int) (*domain.Showing, error) {
	query := `
		SELECT id, movie_title, theatre_name, screen_name, seat_rows, seat_cols, start_time, price
		FROM showings
		WHERE id = $1
	`

	var showing domain.Showing
	var price pgtype.Numeric

	err := p.db.QueryRow(ctx, query, showingID).Scan(
		&showing.ID,
		&showing.MovieTitle,
		&showing.TheatreName,
		&showing.ScreenName,
		&showing.Seats.Rows,
		&showing.Seats.Cols,
		&showing.StartTime,
		&price,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	showing.Price = decimal.NewFromFloat(toFloat64(price))

	if showing.Seats.Rows < 1 || showing.Seats.Rows > 26 || showing.Seats.Cols < 1 {
		return nil, fmt.Errorf("showing %d has an unusable seat grid (%d x %d)",
			showing.ID, showing.Seats.Rows, showing.Seats.Cols)
	}

	return &showing, nil
}

func toFloat64(numeric pgtype.Numeric) float64 {
	if !numeric.Valid {
		return 0.0
	}

	float64Value, floatErr := numeric.Float64Value()
	if floatErr != nil {
		return 0.0
	}

	return float64Value.Float64
}
