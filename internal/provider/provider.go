// Package provider defines the metadata lookup contract the updater depends
// on: candidate search plus full-record fetch for movies and TV episodes.
// Implementations live in subpackages; a nil provider behaves as a permanent
// miss, which degrades every file to its default record.
package provider

import (
	"context"
	"errors"

	"nmjcat/internal/scanner"
)

// ErrNotFound indicates the provider has no candidate for the query. The
// orchestrator recovers from it locally by substituting a default record;
// it never aborts a run.
var ErrNotFound = errors.New("no metadata candidate found")

// Person roles carried on metadata records.
const (
	RoleActor    = "Actor"
	RoleDirector = "Director"
)

// DefaultYear and DefaultReleaseDate are the sentinels recorded when no
// provider match exists.
const (
	DefaultYear        = "9999"
	DefaultReleaseDate = "9999-01-01"
)

// Person is one cast or crew credit.
type Person struct {
	Name string
	Role string
}

// Images partitions image URLs by role, best first.
type Images struct {
	Posters    []string
	Thumbnails []string
	Wallpapers []string
}

// Candidate is one search match.
type Candidate struct {
	ID     string
	Title  string
	Poster string
	Path   string
}

// MovieInfo is the full metadata record for a movie.
type MovieInfo struct {
	TTID        string
	ContentID   string
	Title       string
	SearchTitle string
	Year        string
	ReleaseDate string
	Rating      float64
	Runtime     int // seconds
	Synopsis    string
	Images      Images
	Persons     []Person
	Genres      []string
}

// ShowInfo is the series-level part of a TV record.
type ShowInfo struct {
	TTID        string
	ContentID   string
	Title       string
	SearchTitle string
	ReleaseDate string
	Rating      float64
	Synopsis    string
	Images      Images
	Persons     []Person
	Genres      []string
}

// SeasonInfo is the season-level part of a TV record.
type SeasonInfo struct {
	TTID        string
	ContentID   string
	Title       string
	SearchTitle string
	Rank        int
	ReleaseDate string
	Rating      float64
	Synopsis    string
	Images      Images
	Persons     []Person
	Genres      []string
}

// EpisodeInfo is the episode-level part of a TV record.
type EpisodeInfo struct {
	TTID        string
	ContentID   string
	Title       string
	SearchTitle string
	Rank        int
	ReleaseDate string
	Rating      float64
	Runtime     int // seconds
	Synopsis    string
	Persons     []Person
	Genres      []string
}

// TVInfo is the compound show/season/episode record for one episode file.
type TVInfo struct {
	Show    ShowInfo
	Season  SeasonInfo
	Episode EpisodeInfo
}

// MovieProvider looks up movie metadata.
type MovieProvider interface {
	Search(ctx context.Context, media *scanner.MediaFile) ([]Candidate, error)
	Details(ctx context.Context, id string) (*MovieInfo, error)
}

// TVProvider looks up TV metadata for a parsed episode file.
type TVProvider interface {
	Search(ctx context.Context, media *scanner.MediaFile, parsed scanner.Parsed) ([]Candidate, error)
	Details(ctx context.Context, id string, parsed scanner.Parsed) (*TVInfo, error)
}
