package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kinoteka/cinema-reservation-system/internal/app"
	"github.com/stretchr/testify/require"
)

// Non-deterministic fields ignored while comparing responses.
var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"expiresAt": {},
	"reference": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

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

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		cleanValue(m[k])
	}
}

func cleanValue(v any) {
	switch val := v.(type) {
	case map[string]any:
		cleanMap(val)
	case []any:
		for _, item := range val {
			cleanValue(item)
		}
	}
}

// authenticatedCookie primes a session for the user and returns the cookie
// carrying its token, standing in for the external authentication service.
func authenticatedCookie(t testing.TB, testApp *TestApp, userId int) *http.Cookie {
	ctx, err := testApp.Sessions.Load(context.Background(), "")
	require.NoError(t, err)

	testApp.Sessions.Put(ctx, app.SessionKeyUserId.String(), userId)

	token, _, err := testApp.Sessions.Commit(ctx)
	require.NoError(t, err)

	return &http.Cookie{Name: "session_id", Value: token}
}

func resetDatabase(t testing.TB, testApp *TestApp) {
	_, err := testApp.DB.Exec(context.Background(), `
		TRUNCATE tickets, orders, seat_holds, screenings, seats, ticket_types, rooms, movies, users
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	testApp.Mailer.Reset()
}

// seedBaseState loads the fixture every booking scenario builds on: two
// users, one movie, one room with four seats, two ticket types, and one
// screening (id 1) on a far-future evening.
func seedBaseState(t testing.TB, testApp *TestApp) {
	resetDatabase(t, testApp)

	start := baseScreeningStart()

	_, err := testApp.DB.Exec(context.Background(), `
		INSERT INTO users (first_name, last_name, email) VALUES
			('Anna', 'Kowalska', 'anna@example.com'),
			('Jan', 'Nowak', 'jan@example.com');

		INSERT INTO movies (title, duration_minutes) VALUES ('Heat', 120);

		INSERT INTO rooms (name) VALUES ('Room A');

		INSERT INTO seats (room_id, seat_row, seat_number) VALUES
			(1, 1, 1), (1, 1, 2), (1, 2, 1), (1, 2, 2);

		INSERT INTO ticket_types (name, price) VALUES ('adult', 12.99), ('student', 8.49);`)
	require.NoError(t, err)

	_, err = testApp.DB.Exec(context.Background(), `
		INSERT INTO screenings (movie_id, room_id, start_time, end_time)
		VALUES (1, 1, $1, $2)`,
		start, start.Add(120*time.Minute))
	require.NoError(t, err)
}

func baseScreeningStart() time.Time {
	return time.Date(2095, 1, 1, 20, 0, 0, 0, time.UTC)
}

func insertHold(t testing.TB, testApp *TestApp, seatId, screeningId, userId int, expiresAt time.Time) {
	_, err := testApp.DB.Exec(context.Background(), `
		INSERT INTO seat_holds (seat_id, screening_id, user_id, expires_at)
		VALUES ($1, $2, $3, $4)`,
		seatId, screeningId, userId, expiresAt)
	require.NoError(t, err)
}

func countRows(t testing.TB, testApp *TestApp, table string) int {
	var count int
	err := testApp.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count)
	require.NoError(t, err)

	return count
}
