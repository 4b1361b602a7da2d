package provider

import (
	"fmt"
	"strconv"

	"nmjcat/internal/scanner"
)

// DefaultMovie synthesizes a placeholder movie record from the filename
// alone, used when no provider candidate exists. Catalog insertion always
// succeeds with it; images are simply never fetched.
func DefaultMovie(media *scanner.MediaFile) *MovieInfo {
	return &MovieInfo{
		Title:       media.Title,
		SearchTitle: scanner.SearchTitle(media.Title),
		Year:        DefaultYear,
		ReleaseDate: DefaultReleaseDate,
	}
}

// DefaultTV synthesizes a placeholder show/season/episode record from the
// parsed filename tokens.
func DefaultTV(media *scanner.MediaFile, parsed scanner.Parsed) *TVInfo {
	season := ordinal(parsed.Season)
	episode := ordinal(parsed.Episode)
	return &TVInfo{
		Show: ShowInfo{
			Title:       parsed.ShowName,
			SearchTitle: scanner.SearchTitle(parsed.ShowName),
			ReleaseDate: DefaultReleaseDate,
		},
		Season: SeasonInfo{
			Title:       fmt.Sprintf("%s Season %d", parsed.ShowName, season),
			SearchTitle: scanner.SearchTitle(parsed.ShowName),
			Rank:        season,
			ReleaseDate: DefaultReleaseDate,
		},
		Episode: EpisodeInfo{
			Title:       media.Title,
			SearchTitle: scanner.SearchTitle(media.Title),
			Rank:        episode,
			ReleaseDate: DefaultReleaseDate,
		},
	}
}

// ordinal converts a parsed season/episode token to a number, defaulting to
// 1 when the token is missing or malformed.
func ordinal(token string) int {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
