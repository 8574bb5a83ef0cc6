package domain

import "time"

// Screening is a scheduled showing of a movie at a specific time, room, and
// price. MovieID always references an existing movie.
type Screening struct {
	ID            int64
	ScreeningTime time.Time
	TheaterRoom   string
	TicketPrice   float64
	Subtitled     bool
	MovieID       int64
}
