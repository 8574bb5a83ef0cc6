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

// ScreeningsRepository provides persistence helpers for screening entities.
type ScreeningsRepository struct {
	pool *pgxpool.Pool
}

const screeningColumns = `
    s.id,
    s.screening_time,
    s.theater_room,
    s.ticket_price,
    s.subtitled,
    s.movie_id,
    m.title
`

// ScreeningParams bundles the writable fields of a screening.
type ScreeningParams struct {
	ScreeningTime time.Time
	TheaterRoom   string
	TicketPrice   float64
	Subtitled     bool
	MovieID       int64
}

// ScreeningRow pairs a screening with the title of its owning movie.
type ScreeningRow struct {
	Screening  domain.Screening
	MovieTitle string
}

// ScreeningListFilters holds the optional list filters. TheaterRoom matches
// exactly, SubtitledOnly keeps subtitled screenings, After keeps screenings
// strictly later than the given time.
type ScreeningListFilters struct {
	TheaterRoom   *string
	SubtitledOnly bool
	After         *time.Time
}

// Create inserts a new screening row and returns the stored entity with its
// generated id. The caller must have resolved MovieID to an existing movie.
func (r *ScreeningsRepository) Create(ctx context.Context, params ScreeningParams) (domain.Screening, error) {
	const query = `
        INSERT INTO screenings (screening_time, theater_room, ticket_price, subtitled, movie_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, screening_time, theater_room, ticket_price, subtitled, movie_id
    `
	row := r.pool.QueryRow(ctx, query, params.ScreeningTime, params.TheaterRoom, params.TicketPrice, params.Subtitled, params.MovieID)
	return scanScreening(row)
}

// GetByID fetches a screening together with its movie title.
func (r *ScreeningsRepository) GetByID(ctx context.Context, id int64) (ScreeningRow, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM screenings s
        JOIN movies m ON m.id = s.movie_id
        WHERE s.id = $1
    `, screeningColumns)

	result, err := scanScreeningRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ScreeningRow{}, ErrScreeningNotFound
		}
		return ScreeningRow{}, err
	}
	return result, nil
}

// ExistsByID reports whether a screening with the given id exists.
func (r *ScreeningsRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM screenings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List returns screenings matching the filters, each with its movie title,
// in insertion order.
func (r *ScreeningsRepository) List(ctx context.Context, filters ScreeningListFilters) ([]ScreeningRow, error) {
	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.TheaterRoom != nil {
		where = append(where, fmt.Sprintf("s.theater_room = %s", arg(*filters.TheaterRoom)))
	}
	if filters.SubtitledOnly {
		where = append(where, "s.subtitled = TRUE")
	}
	if filters.After != nil {
		where = append(where, fmt.Sprintf("s.screening_time > %s", arg(*filters.After)))
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM screenings s
        JOIN movies m ON m.id = s.movie_id
    `, screeningColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]ScreeningRow, 0)
	for rows.Next() {
		result, err := scanScreeningRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Update overwrites every writable field of the screening keyed on id and
// returns the stored entity. ErrScreeningNotFound is returned when no row
// matches the id.
func (r *ScreeningsRepository) Update(ctx context.Context, id int64, params ScreeningParams) (domain.Screening, error) {
	const query = `
        UPDATE screenings
        SET screening_time = $2,
            theater_room = $3,
            ticket_price = $4,
            subtitled = $5,
            movie_id = $6
        WHERE id = $1
        RETURNING id, screening_time, theater_room, ticket_price, subtitled, movie_id
    `
	row := r.pool.QueryRow(ctx, query, id, params.ScreeningTime, params.TheaterRoom, params.TicketPrice, params.Subtitled, params.MovieID)
	screening, err := scanScreening(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Screening{}, ErrScreeningNotFound
		}
		return domain.Screening{}, err
	}
	return screening, nil
}

// Delete removes a screening. The owning movie is unaffected.
// ErrScreeningNotFound is returned when no row matches the id.
func (r *ScreeningsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM screenings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScreeningNotFound
	}
	return nil
}

func scanScreening(row pgx.Row) (domain.Screening, error) {
	var screening domain.Screening
	err := row.Scan(
		&screening.ID,
		&screening.ScreeningTime,
		&screening.TheaterRoom,
		&screening.TicketPrice,
		&screening.Subtitled,
		&screening.MovieID,
	)
	if err != nil {
		return domain.Screening{}, err
	}
	return screening, nil
}

func scanScreeningRow(row pgx.Row) (ScreeningRow, error) {
	var result ScreeningRow
	err := row.Scan(
		&result.Screening.ID,
		&result.Screening.ScreeningTime,
		&result.Screening.TheaterRoom,
		&result.Screening.TicketPrice,
		&result.Screening.Subtitled,
		&result.Screening.MovieID,
		&result.MovieTitle,
	)
	if err != nil {
		return ScreeningRow{}, err
	}
	return result, nil
}
