package domain

import "time"

// Movie represents the canonical movie entity in the database/service.
// A movie owns zero or more screenings; deleting the movie removes them.
type Movie struct {
	ID               int64
	Title            string
	Genre            string
	DurationMinutes  int
	ReleaseDate      time.Time
	CurrentlyShowing bool
}
