package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cinereserve/cinereserve/api"
	"github.com/cinereserve/cinereserve/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"expiresAt": {},
	"date":      {},
	"id":        {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func seedShowings(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	query := `
		INSERT INTO showings (id, movie_title, theatre_name, screen_name, seat_rows, seat_cols, start_time, price)
		VALUES
			($1, $3, $4, $5, $6, $7, $8, $9),
			($2, $3, $4, 'Screen 2', $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := db.Exec(context.Background(), query,
		TestShowingId, OtherShowingId,
		TestMovieTitle, TestTheatreName, TestScreenName,
		TestSeatRows, TestSeatCols,
		time.Now().Add(24*time.Hour).Truncate(time.Second),
		TestShowingPrice,
	)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), `SELECT setval('showings_id_seq', 100)`)
	require.NoError(t, err)
}

// resetState wipes bookings and holds so every test starts from two seeded
// showings with all seats available.
func resetState(t *testing.T, app *TestApp) {
	t.Helper()

	_, err := app.DB.Exec(context.Background(), `TRUNCATE booking_seats, bookings`)
	require.NoError(t, err)

	require.NoError(t, app.RedisClient.FlushAll(context.Background()).Err())
}

// createHold places a hold through the API and returns the decoded response.
func createHold(t testing.TB, app *TestApp, showingID int, holderID string, seats ...string) api.HoldSetResponse {
	t.Helper()

	body := fmt.Sprintf(`{"holderId": %q, "seats": [%s]}`, holderID, quoteJoin(seats))

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/showings/%d/holds", showingID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "createHold: %s", rec.Body.String())

	var resp api.HoldSetResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return resp
}

func holdIds(resp api.HoldSetResponse) []string {
	ids := make([]string, len(resp.Holds))
	for i, h := range resp.Holds {
		ids[i] = h.Id
	}
	return ids
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

// seedHold writes a hold straight into Redis in the hold store's key layout,
// bypassing the all-or-nothing acquire. Tests use it to fabricate states the
// API would normally prevent, like two live holds on the same seat.
func seedHold(t testing.TB, client *redis.Client, showingID int, seat, holderID string, ttl time.Duration) string {
	t.Helper()

	ctx := context.Background()
	now := time.Now()

	hold := domain.SeatHold{
		ID:        uuid.NewString(),
		ShowingID: showingID,
		Seat:      seat,
		HolderID:  holderID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	payload, err := json.Marshal(hold)
	require.NoError(t, err)

	lockKey := fmt.Sprintf("seat_hold:%d:%s", showingID, seat)
	recordKey := fmt.Sprintf("hold:%s", hold.ID)
	setKey := fmt.Sprintf("show_holds:%d", showingID)

	require.NoError(t, client.Set(ctx, lockKey, holderID, ttl).Err())
	require.NoError(t, client.Set(ctx, recordKey, payload, ttl).Err())
	require.NoError(t, client.SAdd(ctx, setKey, seat).Err())

	return hold.ID
}

func bookedSeatCount(t testing.TB, db *pgxpool.Pool, showingID int) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		`SELECT count(*) FROM booking_seats WHERE showing_id = $1`, showingID).Scan(&count)
	require.NoError(t, err)

	return count
}

func bookingCount(t testing.TB, db *pgxpool.Pool, showingID int) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		`SELECT count(*) FROM bookings WHERE showing_id = $1`, showingID).Scan(&count)
	require.NoError(t, err)

	return count
}
