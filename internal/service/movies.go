package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/avaldes/cinemas-api/internal/domain"
	"github.com/avaldes/cinemas-api/internal/repository"
)

// MoviesService implements the business operations for movies.
type MoviesService struct {
	repo   *repository.Repository
	logger *log.Logger
}

// NewMoviesService constructs a MoviesService.
func NewMoviesService(repo *repository.Repository, logger *log.Logger) *MoviesService {
	if logger == nil {
		logger = log.Default()
	}
	return &MoviesService{repo: repo, logger: logger}
}

// MovieInput carries the writable movie fields supplied by a client.
// ReleaseDate is a pointer so create validation can distinguish an absent
// date from a supplied one.
type MovieInput struct {
	Title            string
	Genre            string
	DurationMinutes  int
	ReleaseDate      *time.Time
	CurrentlyShowing bool
}

// MoviePatch holds the optional fields of a partial update. Nil fields are
// left untouched.
type MoviePatch struct {
	Title            *string
	Genre            *string
	DurationMinutes  *int
	ReleaseDate      *time.Time
	CurrentlyShowing *bool
}

// List returns movies matching the non-empty filters conjunctively. An empty
// match is an empty list, never an error.
func (s *MoviesService) List(ctx context.Context, filters repository.MovieListFilters) ([]domain.Movie, error) {
	return s.repo.Movies.List(ctx, filters)
}

// GetByID returns the movie or repository.ErrMovieNotFound.
func (s *MoviesService) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	return s.repo.Movies.GetByID(ctx, id)
}

// GetByTitle returns movies with an exactly matching title. Zero matches is
// repository.ErrMovieNotFound.
func (s *MoviesService) GetByTitle(ctx context.Context, title string) ([]domain.Movie, error) {
	movies, err := s.repo.Movies.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, repository.ErrMovieNotFound
	}
	return movies, nil
}

// GetByGenre returns movies with an exactly matching genre. Zero matches is
// repository.ErrMovieNotFound.
func (s *MoviesService) GetByGenre(ctx context.Context, genre string) ([]domain.Movie, error) {
	movies, err := s.repo.Movies.FindByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, repository.ErrMovieNotFound
	}
	return movies, nil
}

// GetByCurrentlyShowing returns movies whose rotation flag matches exactly.
func (s *MoviesService) GetByCurrentlyShowing(ctx context.Context, showing bool) ([]domain.Movie, error) {
	return s.repo.Movies.FindByCurrentlyShowing(ctx, showing)
}

// GetByReleaseDate returns movies released exactly on the given calendar day.
func (s *MoviesService) GetByReleaseDate(ctx context.Context, date time.Time) ([]domain.Movie, error) {
	return s.repo.Movies.FindByReleaseDate(ctx, date)
}

// Create validates the input, persists a new movie, and returns it.
func (s *MoviesService) Create(ctx context.Context, input MovieInput) (domain.Movie, error) {
	if err := validateMovieInput(input); err != nil {
		return domain.Movie{}, err
	}
	return s.repo.Movies.Create(ctx, movieParams(input))
}

// Update overwrites every writable field of an existing movie with the
// provided values. Fields missing from the input fall back to their zero
// values; there are no partial semantics on this path.
func (s *MoviesService) Update(ctx context.Context, id int64, input MovieInput) (domain.Movie, error) {
	return s.repo.Movies.Update(ctx, id, movieParams(input))
}

// UpdatePartial loads the movie and overwrites only the fields present in
// the patch, leaving everything else unchanged.
func (s *MoviesService) UpdatePartial(ctx context.Context, id int64, patch MoviePatch) (domain.Movie, error) {
	movie, err := s.repo.Movies.GetByID(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}

	if patch.Title != nil {
		movie.Title = *patch.Title
	}
	if patch.Genre != nil {
		movie.Genre = *patch.Genre
	}
	if patch.DurationMinutes != nil {
		movie.DurationMinutes = *patch.DurationMinutes
	}
	if patch.ReleaseDate != nil {
		movie.ReleaseDate = *patch.ReleaseDate
	}
	if patch.CurrentlyShowing != nil {
		movie.CurrentlyShowing = *patch.CurrentlyShowing
	}

	return s.repo.Movies.Update(ctx, id, repository.MovieParams{
		Title:            movie.Title,
		Genre:            movie.Genre,
		DurationMinutes:  movie.DurationMinutes,
		ReleaseDate:      movie.ReleaseDate,
		CurrentlyShowing: movie.CurrentlyShowing,
	})
}

// Delete removes an existing movie, cascading to its screenings. Deleting a
// nonexistent movie is repository.ErrMovieNotFound, never a silent success.
func (s *MoviesService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.Movies.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrMovieNotFound
	}
	return s.repo.Movies.Delete(ctx, id)
}

func validateMovieInput(input MovieInput) error {
	v := violations{}
	if strings.TrimSpace(input.Title) == "" {
		v.add("title", "must not be blank")
	}
	if strings.TrimSpace(input.Genre) == "" {
		v.add("genre", "must not be blank")
	}
	if input.DurationMinutes < 1 {
		v.add("durationMinutes", "must be at least 1")
	}
	if input.ReleaseDate == nil {
		v.add("releaseDate", "is required")
	}
	return v.err()
}

func movieParams(input MovieInput) repository.MovieParams {
	params := repository.MovieParams{
		Title:            input.Title,
		Genre:            input.Genre,
		DurationMinutes:  input.DurationMinutes,
		CurrentlyShowing: input.CurrentlyShowing,
	}
	if input.ReleaseDate != nil {
		params.ReleaseDate = *input.ReleaseDate
	}
	return params
}
