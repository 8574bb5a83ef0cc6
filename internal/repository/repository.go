package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avaldes/cinemas-api/internal/store"
)

// ErrMovieNotFound indicates the requested movie does not exist.
var ErrMovieNotFound = errors.New("movie not found")

// ErrScreeningNotFound indicates the requested screening does not exist.
var ErrScreeningNotFound = errors.New("screening not found")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies     *MoviesRepository
	Screenings *ScreeningsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Movies:     &MoviesRepository{pool: pool},
		Screenings: &ScreeningsRepository{pool: pool},
	}
}
