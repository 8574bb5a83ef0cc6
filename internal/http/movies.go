package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avaldes/cinemas-api/internal/domain"
	"github.com/avaldes/cinemas-api/internal/repository"
	"github.com/avaldes/cinemas-api/internal/service"
)

const releaseDateLayout = "2006-01-02"

type movieRequest struct {
	Title            string `json:"title"`
	Genre            string `json:"genre"`
	DurationMinutes  int    `json:"durationMinutes"`
	ReleaseDate      string `json:"releaseDate"`
	CurrentlyShowing bool   `json:"currentlyShowing"`
}

type moviePatchRequest struct {
	Title            *string `json:"title"`
	Genre            *string `json:"genre"`
	DurationMinutes  *int    `json:"durationMinutes"`
	ReleaseDate      *string `json:"releaseDate"`
	CurrentlyShowing *bool   `json:"currentlyShowing"`
}

type movieResponse struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Genre            string `json:"genre"`
	DurationMinutes  int    `json:"durationMinutes"`
	ReleaseDate      string `json:"releaseDate"`
	CurrentlyShowing bool   `json:"currentlyShowing"`
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	filters, err := buildMovieFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movies, err := s.movies.List(r.Context(), filters)
	if err != nil {
		s.respondServiceError(w, "list movies", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponses(movies))
}

func buildMovieFilters(query url.Values) (repository.MovieListFilters, error) {
	var filters repository.MovieListFilters

	if val := strings.TrimSpace(query.Get("title")); val != "" {
		filters.Title = &val
	}
	if val := strings.TrimSpace(query.Get("genre")); val != "" {
		filters.Genre = &val
	}
	if val := strings.TrimSpace(query.Get("durationMinutes")); val != "" {
		duration, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid durationMinutes value")
		}
		filters.DurationMinutes = &duration
	}
	return filters, nil
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movie, err := s.movies.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, "get movie", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleGetMoviesByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := decodePathParam(r, "title")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movies, err := s.movies.GetByTitle(r.Context(), title)
	if err != nil {
		s.respondServiceError(w, "get movies by title", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponses(movies))
}

func (s *Server) handleGetMoviesByGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := decodePathParam(r, "genre")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movies, err := s.movies.GetByGenre(r.Context(), genre)
	if err != nil {
		s.respondServiceError(w, "get movies by genre", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponses(movies))
}

func (s *Server) handleGetMoviesByCurrentlyShowing(w http.ResponseWriter, r *http.Request) {
	flag, err := strconv.ParseBool(chi.URLParam(r, "flag"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid currently-showing flag")
		return
	}

	movies, err := s.movies.GetByCurrentlyShowing(r.Context(), flag)
	if err != nil {
		s.respondServiceError(w, "get movies by currently showing", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponses(movies))
}

func (s *Server) handleGetMoviesByReleaseDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(releaseDateLayout, chi.URLParam(r, "date"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "date must follow YYYY-MM-DD format")
		return
	}

	movies, err := s.movies.GetByReleaseDate(r.Context(), date)
	if err != nil {
		s.respondServiceError(w, "get movies by release date", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponses(movies))
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	input, fieldErr := movieInputFromRequest(req)
	if fieldErr != nil {
		s.respondFieldErrors(w, fieldErr)
		return
	}

	movie, err := s.movies.Create(r.Context(), input)
	if err != nil {
		s.respondServiceError(w, "create movie", err)
		return
	}

	// Movie creation responds 200, not 201; existing clients depend on it.
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req movieRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	input, fieldErr := movieInputFromRequest(req)
	if fieldErr != nil {
		s.respondFieldErrors(w, fieldErr)
		return
	}

	movie, err := s.movies.Update(r.Context(), id, input)
	if err != nil {
		s.respondServiceError(w, "update movie", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handlePatchMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req moviePatchRequest
	if err := decodeJSONBodyLax(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	patch := service.MoviePatch{
		Title:            req.Title,
		Genre:            req.Genre,
		DurationMinutes:  req.DurationMinutes,
		CurrentlyShowing: req.CurrentlyShowing,
	}
	if req.ReleaseDate != nil {
		date, err := time.Parse(releaseDateLayout, *req.ReleaseDate)
		if err != nil {
			s.respondFieldErrors(w, map[string]string{"releaseDate": "must follow YYYY-MM-DD format"})
			return
		}
		patch.ReleaseDate = &date
	}

	movie, err := s.movies.UpdatePartial(r.Context(), id, patch)
	if err != nil {
		s.respondServiceError(w, "patch movie", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := s.movies.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, "delete movie", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// movieInputFromRequest maps the wire payload to a service input. A supplied
// releaseDate must parse; an absent one is left nil for the service to
// validate.
func movieInputFromRequest(req movieRequest) (service.MovieInput, map[string]string) {
	input := service.MovieInput{
		Title:            strings.TrimSpace(req.Title),
		Genre:            strings.TrimSpace(req.Genre),
		DurationMinutes:  req.DurationMinutes,
		CurrentlyShowing: req.CurrentlyShowing,
	}
	if req.ReleaseDate != "" {
		date, err := time.Parse(releaseDateLayout, req.ReleaseDate)
		if err != nil {
			return service.MovieInput{}, map[string]string{"releaseDate": "must follow YYYY-MM-DD format"}
		}
		input.ReleaseDate = &date
	}
	return input, nil
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:               movie.ID,
		Title:            movie.Title,
		Genre:            movie.Genre,
		DurationMinutes:  movie.DurationMinutes,
		ReleaseDate:      movie.ReleaseDate.Format(releaseDateLayout),
		CurrentlyShowing: movie.CurrentlyShowing,
	}
}

func toMovieResponses(movies []domain.Movie) []movieResponse {
	responses := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		responses = append(responses, toMovieResponse(movie))
	}
	return responses
}
