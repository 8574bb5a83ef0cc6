package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avaldes/cinemas-api/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    id,
    title,
    genre,
    duration_minutes,
    release_date,
    currently_showing
`

// MovieParams bundles the writable fields of a movie.
type MovieParams struct {
	Title            string
	Genre            string
	DurationMinutes  int
	ReleaseDate      time.Time
	CurrentlyShowing bool
}

// MovieListFilters holds the optional exact-match list filters. Nil fields
// are ignored; set fields are combined conjunctively.
type MovieListFilters struct {
	Title           *string
	Genre           *string
	DurationMinutes *int
}

// Create inserts a new movie row and returns the stored entity with its
// generated id.
func (r *MoviesRepository) Create(ctx context.Context, params MovieParams) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movies (title, genre, duration_minutes, release_date, currently_showing)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query, params.Title, params.Genre, params.DurationMinutes, params.ReleaseDate, params.CurrentlyShowing)
	return scanMovie(row)
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, ErrMovieNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// ExistsByID reports whether a movie with the given id exists.
func (r *MoviesRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List returns movies matching the provided filters in insertion order.
func (r *MoviesRepository) List(ctx context.Context, filters MovieListFilters) ([]domain.Movie, error) {
	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Title != nil {
		where = append(where, fmt.Sprintf("title = %s", arg(*filters.Title)))
	}
	if filters.Genre != nil {
		where = append(where, fmt.Sprintf("genre = %s", arg(*filters.Genre)))
	}
	if filters.DurationMinutes != nil {
		where = append(where, fmt.Sprintf("duration_minutes = %s", arg(*filters.DurationMinutes)))
	}

	query := fmt.Sprintf(`SELECT %s FROM movies`, movieColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	return r.queryMovies(ctx, query, args...)
}

// FindByTitle returns movies whose title matches exactly.
func (r *MoviesRepository) FindByTitle(ctx context.Context, title string) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE title = $1 ORDER BY id`, movieColumns)
	return r.queryMovies(ctx, query, title)
}

// FindByGenre returns movies whose genre matches exactly.
func (r *MoviesRepository) FindByGenre(ctx context.Context, genre string) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE genre = $1 ORDER BY id`, movieColumns)
	return r.queryMovies(ctx, query, genre)
}

// FindByReleaseDate returns movies released exactly on the given calendar day.
func (r *MoviesRepository) FindByReleaseDate(ctx context.Context, date time.Time) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE release_date = $1 ORDER BY id`, movieColumns)
	return r.queryMovies(ctx, query, date)
}

// FindByCurrentlyShowing returns movies whose rotation flag matches.
func (r *MoviesRepository) FindByCurrentlyShowing(ctx context.Context, showing bool) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE currently_showing = $1 ORDER BY id`, movieColumns)
	return r.queryMovies(ctx, query, showing)
}

// Update overwrites every writable field of the movie and returns the stored
// entity. ErrMovieNotFound is returned when no row matches the id.
func (r *MoviesRepository) Update(ctx context.Context, id int64, params MovieParams) (domain.Movie, error) {
	query := fmt.Sprintf(`
        UPDATE movies
        SET title = $2,
            genre = $3,
            duration_minutes = $4,
            release_date = $5,
            currently_showing = $6
        WHERE id = $1
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query, id, params.Title, params.Genre, params.DurationMinutes, params.ReleaseDate, params.CurrentlyShowing)
	movie, err := scanMovie(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, ErrMovieNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// Delete removes a movie. Screenings owned by the movie are removed by the
// schema's ON DELETE CASCADE. ErrMovieNotFound is returned when no row
// matches the id.
func (r *MoviesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMovieNotFound
	}
	return nil
}

func (r *MoviesRepository) queryMovies(ctx context.Context, query string, args ...interface{}) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.DurationMinutes,
		&movie.ReleaseDate,
		&movie.CurrentlyShowing,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}
