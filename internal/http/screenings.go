package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avaldes/cinemas-api/internal/repository"
	"github.com/avaldes/cinemas-api/internal/service"
)

const screeningTimeLayout = "2006-01-02T15:04:05"

type screeningRequest struct {
	ScreeningTime string   `json:"screeningTime"`
	TheaterRoom   string   `json:"theaterRoom"`
	TicketPrice   *float64 `json:"ticketPrice"`
	Subtitled     bool     `json:"subtitled"`
	MovieID       int64    `json:"movieId"`
}

type screeningResponse struct {
	ID            int64   `json:"id"`
	ScreeningTime string  `json:"screeningTime"`
	TheaterRoom   string  `json:"theaterRoom"`
	TicketPrice   float64 `json:"ticketPrice"`
	Subtitled     bool    `json:"subtitled"`
	MovieTitle    string  `json:"movieTitle"`
}

func (s *Server) handleListScreenings(w http.ResponseWriter, r *http.Request) {
	filters, err := buildScreeningFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	screenings, err := s.screenings.List(r.Context(), filters)
	if err != nil {
		s.respondServiceError(w, "list screenings", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toScreeningResponses(screenings))
}

func buildScreeningFilters(query url.Values) (repository.ScreeningListFilters, error) {
	var filters repository.ScreeningListFilters

	if val := strings.TrimSpace(query.Get("theaterRoom")); val != "" {
		filters.TheaterRoom = &val
	}
	if val := strings.TrimSpace(query.Get("subtitled")); val != "" {
		subtitled, err := strconv.ParseBool(val)
		if err != nil {
			return filters, fmt.Errorf("invalid subtitled value")
		}
		filters.SubtitledOnly = subtitled
	}
	if val := strings.TrimSpace(query.Get("after")); val != "" {
		after, err := time.Parse(screeningTimeLayout, val)
		if err != nil {
			return filters, fmt.Errorf("invalid after value, must follow %s", screeningTimeLayout)
		}
		filters.After = &after
	}
	return filters, nil
}

func (s *Server) handleGetScreening(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	screening, err := s.screenings.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, "get screening", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toScreeningResponse(screening))
}

func (s *Server) handleCreateScreening(w http.ResponseWriter, r *http.Request) {
	var req screeningRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	input, fieldErr := screeningInputFromRequest(req)
	if fieldErr != nil {
		s.respondFieldErrors(w, fieldErr)
		return
	}

	screening, err := s.screenings.Create(r.Context(), input)
	if err != nil {
		s.respondServiceError(w, "create screening", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toScreeningResponse(screening))
}

func (s *Server) handleUpdateScreening(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req screeningRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	input, fieldErr := screeningInputFromRequest(req)
	if fieldErr != nil {
		s.respondFieldErrors(w, fieldErr)
		return
	}

	screening, err := s.screenings.Update(r.Context(), id, input)
	if err != nil {
		s.respondServiceError(w, "update screening", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toScreeningResponse(screening))
}

func (s *Server) handleDeleteScreening(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := s.screenings.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, "delete screening", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func screeningInputFromRequest(req screeningRequest) (service.ScreeningInput, map[string]string) {
	input := service.ScreeningInput{
		TheaterRoom: strings.TrimSpace(req.TheaterRoom),
		TicketPrice: req.TicketPrice,
		Subtitled:   req.Subtitled,
		MovieID:     req.MovieID,
	}
	if req.ScreeningTime != "" {
		at, err := time.Parse(screeningTimeLayout, req.ScreeningTime)
		if err != nil {
			return service.ScreeningInput{}, map[string]string{"screeningTime": "must follow " + screeningTimeLayout + " format"}
		}
		input.ScreeningTime = &at
	}
	return input, nil
}

func toScreeningResponse(screening service.ScreeningOutput) screeningResponse {
	return screeningResponse{
		ID:            screening.ID,
		ScreeningTime: screening.ScreeningTime.Format(screeningTimeLayout),
		TheaterRoom:   screening.TheaterRoom,
		TicketPrice:   screening.TicketPrice,
		Subtitled:     screening.Subtitled,
		MovieTitle:    screening.MovieTitle,
	}
}

func toScreeningResponses(screenings []service.ScreeningOutput) []screeningResponse {
	responses := make([]screeningResponse, 0, len(screenings))
	for _, screening := range screenings {
		responses = append(responses, toScreeningResponse(screening))
	}
	return responses
}
