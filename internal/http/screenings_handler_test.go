package httpserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func duneScreeningRequest(movieID int64) screeningRequest {
	price := 9.50
	return screeningRequest{
		ScreeningTime: "2024-05-01T20:00:00",
		TheaterRoom:   "Room 1",
		TicketPrice:   &price,
		Subtitled:     false,
		MovieID:       movieID,
	}
}

func createScreening(t testing.TB, ts *testServer, req screeningRequest) screeningResponse {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/screenings", req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create screening status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp screeningResponse
	decodeResponse(t, rec, &resp)
	return resp
}

func TestCreateScreening(t *testing.T) {
	ts := newTestServer(t)
	defer ts.cleanup()

	movie := createMovie(t, ts, duneRequest())

	rec := ts.do(t, http.MethodPost, "/screenings", duneScreeningRequest(movie.ID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var resp screeningResponse
	decodeResponse(t, rec, &resp)
	if resp.ID == 0 {
		t.Fatalf("expected generated id, got %+v", resp)
	}
	if resp.MovieTitle != "Dune" {
		t.Fatalf("movieTitle = %q, want Dune", resp.MovieTitle)
	}
	if resp.ScreeningTime != "2024-05-01T20:00:00" {
		t.Fatalf("screeningTime = %q", resp.ScreeningTime)
	}
}

func TestCreateScreeningUnknownMovie(t *testing.T) {
	ts := newTestServer(t)
	defer ts.cleanup()

	rec := ts.do(t, http.MethodPost, "/screenings", duneScreeningRequest(99999))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Code != "NOT_FOUND" || resp.Message != "movie not found" {
		t.Fatalf("error = %+v", resp)
	}
}

func TestCreateScreeningValidation(t *testing.T) {
	ts := newTestServer(t)
	defer ts.cleanup()

	rec := ts.do(t, http.MethodPost, "/screenings", screeningRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Code != "VALIDATION_ERROR" {
		t.Fatalf("error code = %s, want VALIDATION_ERROR", resp.Code)
	}
	for _, field := range []string{"screeningTime", "theaterRoom", "ticketPrice", "movieId"} {
		if _, ok := resp.Details[field]; !ok {
			t.Fatalf("details = %v, want key %q", resp.Details, field)
		}
	}
}

func TestScreeningUpdateAndDelete(t *testing.T) {
	ts := newTestServer(t)
	defer ts.cleanup()

	movie := createMovie(t, ts, duneRequest())
	created := createScreening(t, ts, duneScreeningRequest(movie.ID))

	update := duneScreeningRequest(movie.ID)
	update.TheaterRoom = "Room 7"
	update.Subtitled = true
	rec := ts.do(t, http.MethodPut, fmt.Sprintf("/screenings/%d", created.ID), update)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated screeningResponse
	decodeResponse(t, rec, &updated)
	if updated.ID != created.ID || updated.TheaterRoom != "Room 7" || !updated.Subtitled {
		t.Fatalf("put result = %+v", updated)
	}

	rec = ts.do(t, http.MethodPut, "/screenings/99999", update)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("put unknown screening status = %d, want 404", rec.Code)
	}

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/screenings/%d", created.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/screenings/%d", created.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

// Removing a movie takes its screenings with it.
func TestDeleteMovieRemovesScreenings(t *testing.T) {
	ts := newTestServer(t)
	defer ts.cleanup()

	movie := createMovie(t, ts, duneRequest())
	screening := createScreening(t, ts, duneScreeningRequest(movie.ID))

	rec := ts.do(t, http.MethodDelete, fmt.Sprintf("/movies/%d", movie.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete movie status = %d, want 204", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/screenings/%d", screening.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("screening survived movie delete, status = %d", rec.Code)
	}
}

func TestListScreeningsWithQueryFilters(t *testing.T) {
	ts := newTestServer(t)
	defer ts.cleanup()

	movie := createMovie(t, ts, duneRequest())

	early := duneScreeningRequest(movie.ID)
	early.ScreeningTime = "2024-05-01T14:00:00"
	createScreening(t, ts, early)

	late := duneScreeningRequest(movie.ID)
	late.ScreeningTime = "2024-05-01T22:00:00"
	late.TheaterRoom = "Room 2"
	late.Subtitled = true
	createScreening(t, ts, late)

	rec := ts.do(t, http.MethodGet, "/screenings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var all []screeningResponse
	decodeResponse(t, rec, &all)
	if len(all) != 2 {
		t.Fatalf("list size = %d, want 2", len(all))
	}

	rec = ts.do(t, http.MethodGet, "/screenings?theaterRoom=Room+2&subtitled=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list status = %d", rec.Code)
	}
	var filtered []screeningResponse
	decodeResponse(t, rec, &filtered)
	if len(filtered) != 1 || filtered[0].TheaterRoom != "Room 2" {
		t.Fatalf("filtered list = %+v", filtered)
	}

	rec = ts.do(t, http.MethodGet, "/screenings?after=2024-05-01T20:00:00", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("after filter status = %d", rec.Code)
	}
	var after []screeningResponse
	decodeResponse(t, rec, &after)
	if len(after) != 1 || after[0].ScreeningTime != "2024-05-01T22:00:00" {
		t.Fatalf("after filter = %+v", after)
	}

	rec = ts.do(t, http.MethodGet, "/screenings?after=yesterday", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad after filter status = %d, want 400", rec.Code)
	}
}

func TestScreeningBadTimeFormat(t *testing.T) {
	ts := newTestServer(t)
	defer ts.cleanup()

	movie := createMovie(t, ts, duneRequest())
	req := duneScreeningRequest(movie.ID)
	req.ScreeningTime = "2024-05-01 20:00"

	rec := ts.do(t, http.MethodPost, "/screenings", req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Details map[string]string `json:"details"`
	}
	decodeResponse(t, rec, &resp)
	if _, ok := resp.Details["screeningTime"]; !ok {
		t.Fatalf("details = %v, want key screeningTime", resp.Details)
	}
}

func TestEmptyBodyRejected(t *testing.T) {
	ts := newTestServer(t)
	defer ts.cleanup()

	req := httptest.NewRequest(http.MethodPost, "/screenings", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
}
