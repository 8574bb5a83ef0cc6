package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/avaldes/cinemas-api/internal/repository"
)

// ScreeningsService implements the business operations for screenings. Every
// read returns a projected view that carries the owning movie's title
// instead of its id.
type ScreeningsService struct {
	repo   *repository.Repository
	logger *log.Logger
}

// NewScreeningsService constructs a ScreeningsService.
func NewScreeningsService(repo *repository.Repository, logger *log.Logger) *ScreeningsService {
	if logger == nil {
		logger = log.Default()
	}
	return &ScreeningsService{repo: repo, logger: logger}
}

// ScreeningInput carries the writable screening fields supplied by a client.
// Pointer fields let create validation distinguish absent values.
type ScreeningInput struct {
	ScreeningTime *time.Time
	TheaterRoom   string
	TicketPrice   *float64
	Subtitled     bool
	MovieID       int64
}

// ScreeningOutput is the projected screening view returned to clients.
type ScreeningOutput struct {
	ID            int64
	ScreeningTime time.Time
	TheaterRoom   string
	TicketPrice   float64
	Subtitled     bool
	MovieTitle    string
}

// List returns all screenings matching the filters as output views.
func (s *ScreeningsService) List(ctx context.Context, filters repository.ScreeningListFilters) ([]ScreeningOutput, error) {
	rows, err := s.repo.Screenings.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	outputs := make([]ScreeningOutput, 0, len(rows))
	for _, row := range rows {
		outputs = append(outputs, screeningOutput(row))
	}
	return outputs, nil
}

// GetByID returns the screening view or repository.ErrScreeningNotFound.
func (s *ScreeningsService) GetByID(ctx context.Context, id int64) (ScreeningOutput, error) {
	row, err := s.repo.Screenings.GetByID(ctx, id)
	if err != nil {
		return ScreeningOutput{}, err
	}
	return screeningOutput(row), nil
}

// Create validates the input, resolves the owning movie, persists a new
// screening, and returns its view. A missing movie reference fails with
// repository.ErrMovieNotFound before anything is written.
func (s *ScreeningsService) Create(ctx context.Context, input ScreeningInput) (ScreeningOutput, error) {
	if err := validateScreeningInput(input); err != nil {
		return ScreeningOutput{}, err
	}

	movie, err := s.repo.Movies.GetByID(ctx, input.MovieID)
	if err != nil {
		return ScreeningOutput{}, err
	}

	screening, err := s.repo.Screenings.Create(ctx, screeningParams(input))
	if err != nil {
		return ScreeningOutput{}, err
	}

	return screeningOutput(repository.ScreeningRow{Screening: screening, MovieTitle: movie.Title}), nil
}

// Update replaces an existing screening with the mapped input, keyed on the
// path id. This is a full replace, not a merge: every field is taken from
// the input. The screening must exist and the input's movie reference must
// resolve.
func (s *ScreeningsService) Update(ctx context.Context, id int64, input ScreeningInput) (ScreeningOutput, error) {
	exists, err := s.repo.Screenings.ExistsByID(ctx, id)
	if err != nil {
		return ScreeningOutput{}, err
	}
	if !exists {
		return ScreeningOutput{}, repository.ErrScreeningNotFound
	}

	movie, err := s.repo.Movies.GetByID(ctx, input.MovieID)
	if err != nil {
		return ScreeningOutput{}, err
	}

	screening, err := s.repo.Screenings.Update(ctx, id, screeningParams(input))
	if err != nil {
		return ScreeningOutput{}, err
	}

	return screeningOutput(repository.ScreeningRow{Screening: screening, MovieTitle: movie.Title}), nil
}

// Delete removes an existing screening; the owning movie is unaffected.
// Deleting a nonexistent screening is repository.ErrScreeningNotFound.
func (s *ScreeningsService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.Screenings.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrScreeningNotFound
	}
	return s.repo.Screenings.Delete(ctx, id)
}

func validateScreeningInput(input ScreeningInput) error {
	v := violations{}
	if input.ScreeningTime == nil {
		v.add("screeningTime", "is required")
	}
	if strings.TrimSpace(input.TheaterRoom) == "" {
		v.add("theaterRoom", "is required")
	}
	if input.TicketPrice == nil {
		v.add("ticketPrice", "is required")
	} else if *input.TicketPrice < 0 {
		v.add("ticketPrice", "must not be negative")
	}
	if input.MovieID <= 0 {
		v.add("movieId", "is required")
	}
	return v.err()
}

func screeningParams(input ScreeningInput) repository.ScreeningParams {
	params := repository.ScreeningParams{
		TheaterRoom: input.TheaterRoom,
		Subtitled:   input.Subtitled,
		MovieID:     input.MovieID,
	}
	if input.ScreeningTime != nil {
		params.ScreeningTime = *input.ScreeningTime
	}
	if input.TicketPrice != nil {
		params.TicketPrice = *input.TicketPrice
	}
	return params
}

func screeningOutput(row repository.ScreeningRow) ScreeningOutput {
	return ScreeningOutput{
		ID:            row.Screening.ID,
		ScreeningTime: row.Screening.ScreeningTime,
		TheaterRoom:   row.Screening.TheaterRoom,
		TicketPrice:   row.Screening.TicketPrice,
		Subtitled:     row.Screening.Subtitled,
		MovieTitle:    row.MovieTitle,
	}
}
