package httpserver

import (
	"net/url"
	"testing"
	"time"
)

func TestBuildMovieFilters(t *testing.T) {
	filters, err := buildMovieFilters(url.Values{
		"title":           {"  Dune  "},
		"genre":           {"Sci-Fi"},
		"durationMinutes": {"155"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Title == nil || *filters.Title != "Dune" {
		t.Fatalf("Title = %v, want Dune", filters.Title)
	}
	if filters.Genre == nil || *filters.Genre != "Sci-Fi" {
		t.Fatalf("Genre = %v, want Sci-Fi", filters.Genre)
	}
	if filters.DurationMinutes == nil || *filters.DurationMinutes != 155 {
		t.Fatalf("DurationMinutes = %v, want 155", filters.DurationMinutes)
	}

	filters, err = buildMovieFilters(url.Values{"title": {"   "}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Title != nil {
		t.Fatalf("blank title should be dropped, got %v", *filters.Title)
	}

	if _, err := buildMovieFilters(url.Values{"durationMinutes": {"abc"}}); err == nil {
		t.Fatalf("expected error for non-numeric durationMinutes")
	}
}

func TestBuildScreeningFilters(t *testing.T) {
	filters, err := buildScreeningFilters(url.Values{
		"theaterRoom": {"Room 2"},
		"subtitled":   {"true"},
		"after":       {"2024-05-01T20:00:00"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.TheaterRoom == nil || *filters.TheaterRoom != "Room 2" {
		t.Fatalf("TheaterRoom = %v, want Room 2", filters.TheaterRoom)
	}
	if !filters.SubtitledOnly {
		t.Fatalf("SubtitledOnly = false, want true")
	}
	want := time.Date(2024, time.May, 1, 20, 0, 0, 0, time.UTC)
	if filters.After == nil || !filters.After.Equal(want) {
		t.Fatalf("After = %v, want %v", filters.After, want)
	}

	if _, err := buildScreeningFilters(url.Values{"subtitled": {"maybe"}}); err == nil {
		t.Fatalf("expected error for invalid subtitled value")
	}
	if _, err := buildScreeningFilters(url.Values{"after": {"not-a-time"}}); err == nil {
		t.Fatalf("expected error for invalid after value")
	}
}

func FuzzBuildMovieFilters(f *testing.F) {
	f.Add("title=Dune&genre=Sci-Fi&durationMinutes=155")
	f.Add("durationMinutes=abc")
	f.Add("title=%20%20&genre=")
	f.Add("")

	f.Fuzz(func(t *testing.T, rawQuery string) {
		query, err := url.ParseQuery(rawQuery)
		if err != nil {
			t.Skip()
		}
		filters, err := buildMovieFilters(query)
		if err != nil {
			return
		}
		if filters.Title != nil && *filters.Title == "" {
			t.Fatalf("blank title filter retained for query %q", rawQuery)
		}
		if filters.Genre != nil && *filters.Genre == "" {
			t.Fatalf("blank genre filter retained for query %q", rawQuery)
		}
	})
}
