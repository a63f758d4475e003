package integration_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ScreeningsTestSuite struct {
	BaseSuite
}

func TestScreeningsSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	suite.Run(t, new(ScreeningsTestSuite))
}

func (s *ScreeningsTestSuite) TestCreateScreeningHandler() {
	cookies := []*http.Cookie{authenticatedCookie(s.T(), s.app, 1)}

	scenarios := []Scenario{
		{
			Name:             "returns 401 if user is not authenticated",
			Method:           "POST",
			URL:              "/screenings",
			Body:             strings.NewReader(`{"movieId": 1, "roomId": 1, "startTime": "2095-01-02T10:00:00Z"}`),
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: `{"message": "You must be authenticated to access this resource"}`,
		},
		{
			Name:           "returns 422 when movie id is missing",
			Method:         "POST",
			URL:            "/screenings",
			Body:           strings.NewReader(`{"roomId": 1, "startTime": "2095-01-02T10:00:00Z"}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusUnprocessableEntity,
			ExpectedResponse: `{
				"message": "One or more fields failed validation",
				"validationErrors": [
					{"field": "MovieId", "issue": "is required"}
				]
			}`,
		},
		{
			Name:             "returns 422 for a start time in the past",
			Method:           "POST",
			URL:              "/screenings",
			Body:             strings.NewReader(`{"movieId": 1, "roomId": 1, "startTime": "2001-01-01T10:00:00Z"}`),
			Cookies:          cookies,
			ExpectedStatus:   http.StatusUnprocessableEntity,
			ExpectedResponse: `{"message": "The screening cannot start in the past"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
		{
			Name:             "returns 404 for a movie that does not exist",
			Method:           "POST",
			URL:              "/screenings",
			Body:             strings.NewReader(`{"movieId": 999, "roomId": 1, "startTime": "2095-01-02T10:00:00Z"}`),
			Cookies:          cookies,
			ExpectedStatus:   http.StatusNotFound,
			ExpectedResponse: `{"message": "The requested resource not found"}`,
		},
		{
			// The seeded screening runs 20:00-22:00. Starting 22:10 leaves
			// only a 10 minute gap, less than the 15 minute cleaning buffer.
			Name:             "returns 409 when the gap to the previous screening is shorter than the cleaning buffer",
			Method:           "POST",
			URL:              "/screenings",
			Body:             strings.NewReader(`{"movieId": 1, "roomId": 1, "startTime": "2095-01-01T22:10:00Z"}`),
			Cookies:          cookies,
			ExpectedStatus:   http.StatusConflict,
			ExpectedResponse: `{"message": "The screening overlaps with another screening in the same room"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
		{
			Name:           "allows a gap exactly equal to the cleaning buffer",
			Method:         "POST",
			URL:            "/screenings",
			Body:           strings.NewReader(`{"movieId": 1, "roomId": 1, "startTime": "2095-01-01T22:15:00Z"}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusCreated,
			ExpectedResponse: `{
				"id": 2,
				"movieId": 1,
				"roomId": 1,
				"startTime": "2095-01-01T22:15:00Z",
				"endTime": "2095-01-02T00:15:00Z"
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
		{
			Name:           "successfully schedules a screening in a free slot",
			Method:         "POST",
			URL:            "/screenings",
			Body:           strings.NewReader(`{"movieId": 1, "roomId": 1, "startTime": "2095-01-02T10:00:00Z"}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusCreated,
			ExpectedResponse: `{
				"id": 2,
				"movieId": 1,
				"roomId": 1,
				"startTime": "2095-01-02T10:00:00Z",
				"endTime": "2095-01-02T12:00:00Z"
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *ScreeningsTestSuite) TestUpdateScreeningHandler() {
	cookies := []*http.Cookie{authenticatedCookie(s.T(), s.app, 1)}

	scenarios := []Scenario{
		{
			Name:             "returns 401 if user is not authenticated",
			Method:           "PUT",
			URL:              "/screenings/1",
			Body:             strings.NewReader(`{"movieId": 1, "roomId": 1, "startTime": "2095-01-01T20:30:00Z"}`),
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: `{"message": "You must be authenticated to access this resource"}`,
		},
		{
			Name:             "returns 404 for a screening that does not exist",
			Method:           "PUT",
			URL:              "/screenings/999",
			Body:             strings.NewReader(`{"movieId": 1, "roomId": 1, "startTime": "2095-01-01T20:30:00Z"}`),
			Cookies:          cookies,
			ExpectedStatus:   http.StatusNotFound,
			ExpectedResponse: `{"message": "The requested resource not found"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
		{
			// A screening never conflicts with its own slot, so a small shift
			// within it must pass the overlap check.
			Name:           "successfully shifts a screening within its own slot",
			Method:         "PUT",
			URL:            "/screenings/1",
			Body:           strings.NewReader(`{"movieId": 1, "roomId": 1, "startTime": "2095-01-01T20:30:00Z"}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"id": 1,
				"movieId": 1,
				"roomId": 1,
				"startTime": "2095-01-01T20:30:00Z",
				"endTime": "2095-01-01T22:30:00Z"
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
		{
			Name:             "returns 409 when moving a screening into another screening's padded window",
			Method:           "PUT",
			URL:              "/screenings/2",
			Body:             strings.NewReader(`{"movieId": 1, "roomId": 1, "startTime": "2095-01-01T21:00:00Z"}`),
			Cookies:          cookies,
			ExpectedStatus:   http.StatusConflict,
			ExpectedResponse: `{"message": "The screening overlaps with another screening in the same room"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)

				_, err := app.DB.Exec(context.Background(), `
					INSERT INTO screenings (movie_id, room_id, start_time, end_time)
					VALUES (1, 1, '2095-01-03T10:00:00Z', '2095-01-03T12:00:00Z')`)
				require.NoError(t, err)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *ScreeningsTestSuite) TestGetScreeningCollisionsHandler() {
	scenarios := []Scenario{
		{
			Name:             "returns 400 when movieId is missing",
			Method:           "GET",
			URL:              "/screenings/collisions?roomId=1&startTime=2095-01-01T21:00:00Z",
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"message": "missing movieId query parameter"}`,
		},
		{
			Name:             "returns 400 for a malformed start time",
			Method:           "GET",
			URL:              "/screenings/collisions?movieId=1&roomId=1&startTime=tomorrow",
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"message": "invalid startTime query parameter, expected RFC 3339"}`,
		},
		{
			// A 120 minute movie starting at 21:00 runs into the seeded
			// 20:00-22:00 screening even before the buffer is applied.
			Name:           "lists the screenings a proposed slot would collide with",
			Method:         "GET",
			URL:            "/screenings/collisions?movieId=1&roomId=1&startTime=2095-01-01T21:00:00Z",
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"collisions": [
					{
						"movieTitle": "Heat",
						"roomName": "Room A",
						"screeningTime": "2095-01-01T20:00:00Z",
						"endTime": "2095-01-01T22:00:00Z",
						"cleaningDurationMinutes": 15
					}
				]
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
		{
			Name:             "returns an empty list for a clear slot",
			Method:           "GET",
			URL:              "/screenings/collisions?movieId=1&roomId=1&startTime=2095-02-01T10:00:00Z",
			ExpectedStatus:   http.StatusOK,
			ExpectedResponse: `{"collisions": []}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *ScreeningsTestSuite) TestCheckRoomAvailabilityHandler() {
	scenarios := []Scenario{
		{
			Name:             "returns 400 when the window is inverted",
			Method:           "GET",
			URL:              "/screenings/check?roomId=1&from=2095-01-01T22:00:00Z&to=2095-01-01T20:00:00Z",
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"message": "to must be after from"}`,
		},
		{
			Name:           "reports the screenings occupying the requested window",
			Method:         "GET",
			URL:            "/screenings/check?roomId=1&from=2095-01-01T21:00:00Z&to=2095-01-01T23:00:00Z",
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"collisions": [
					{
						"movieTitle": "Heat",
						"roomName": "Room A",
						"screeningTime": "2095-01-01T20:00:00Z",
						"endTime": "2095-01-01T22:00:00Z",
						"cleaningDurationMinutes": 15
					}
				]
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
		{
			Name:             "reports a free room for a clear window",
			Method:           "GET",
			URL:              "/screenings/check?roomId=1&from=2095-02-01T10:00:00Z&to=2095-02-01T12:00:00Z",
			ExpectedStatus:   http.StatusOK,
			ExpectedResponse: `{"collisions": []}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *ScreeningsTestSuite) TestListScreeningsHandler() {
	scenarios := []Scenario{
		{
			Name:           "lists screenings with movie and room names",
			Method:         "GET",
			URL:            "/screenings",
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"screenings": [
					{
						"id": 1,
						"movieTitle": "Heat",
						"roomName": "Room A",
						"startTime": "2095-01-01T20:00:00Z",
						"endTime": "2095-01-01T22:00:00Z"
					}
				]
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *ScreeningsTestSuite) TestGetSeatMapByScreeningHandler() {
	scenarios := []Scenario{
		{
			Name:             "returns 400 for an invalid screening ID",
			Method:           "GET",
			URL:              "/screenings/abc/seats",
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"message": "invalid screeningId parameter"}`,
		},
		{
			Name:             "returns 404 for a screening that does not exist",
			Method:           "GET",
			URL:              "/screenings/999/seats",
			ExpectedStatus:   http.StatusNotFound,
			ExpectedResponse: `{"message": "The requested resource not found"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
			},
		},
		{
			Name:           "marks sold and held seats as unavailable",
			Method:         "GET",
			URL:            "/screenings/1/seats",
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"screeningId": 1,
				"seats": [
					{"seatId": 1, "row": 1, "number": 1, "available": false},
					{"seatId": 2, "row": 1, "number": 2, "available": false, "holdingUserId": 2},
					{"seatId": 3, "row": 2, "number": 1, "available": true},
					{"seatId": 4, "row": 2, "number": 2, "available": true}
				]
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedBaseState(t, app)
				insertHold(t, app, 2, 1, 2, time.Now().Add(15*time.Minute))

				_, err := app.DB.Exec(context.Background(), `
					INSERT INTO orders (reference, user_id, total_cost)
					VALUES (gen_random_uuid(), 2, 12.99);

					INSERT INTO tickets (order_id, screening_id, seat_id, ticket_type_id, price)
					VALUES (1, 1, 1, 1, 12.99);`)
				require.NoError(t, err)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
