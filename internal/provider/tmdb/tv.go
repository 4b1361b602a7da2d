package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"nmjcat/internal/provider"
	"nmjcat/internal/scanner"
)

type tvSearchResult struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PosterPath string `json:"poster_path"`
}

type tvSearchResponse struct {
	Results []tvSearchResult `json:"results"`
}

type tvDetails struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Genres       []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Images struct {
		Posters   []imageRef `json:"posters"`
		Backdrops []imageRef `json:"backdrops"`
	} `json:"images"`
	Credits struct {
		Cast []struct {
			Name string `json:"name"`
		} `json:"cast"`
	} `json:"credits"`
	ExternalIDs struct {
		IMDBID string `json:"imdb_id"`
	} `json:"external_ids"`
}

type seasonDetails struct {
	PosterPath string `json:"poster_path"`
	Overview   string `json:"overview"`
	AirDate    string `json:"air_date"`
	Episodes   []struct {
		ID            int64   `json:"id"`
		EpisodeNumber int     `json:"episode_number"`
		Name          string  `json:"name"`
		Overview      string  `json:"overview"`
		AirDate       string  `json:"air_date"`
		VoteAverage   float64 `json:"vote_average"`
		Runtime       int     `json:"runtime"`
		Crew          []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
		GuestStars []struct {
			Name string `json:"name"`
		} `json:"guest_stars"`
	} `json:"episodes"`
}

// TVClient provides TV series lookups against the TMDB API.
type TVClient struct {
	*Client
}

var _ provider.TVProvider = (*TVClient)(nil)

// NewTV creates a TMDB TV client sharing the movie client configuration.
func NewTV(apiKey, baseURL, language string, opts ...Option) (*TVClient, error) {
	client, err := New(apiKey, baseURL, language, opts...)
	if err != nil {
		return nil, err
	}
	return &TVClient{Client: client}, nil
}

// Search queries TMDB for the parsed show name.
func (c *TVClient) Search(ctx context.Context, media *scanner.MediaFile, parsed scanner.Parsed) ([]provider.Candidate, error) {
	if parsed.ShowName == "" {
		return nil, provider.ErrNotFound
	}

	params := url.Values{}
	params.Set("query", parsed.ShowName)
	var resp tvSearchResponse
	if err := c.get(ctx, "/search/tv", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: %q", provider.ErrNotFound, parsed.ShowName)
	}

	candidates := make([]provider.Candidate, 0, len(resp.Results))
	for _, result := range resp.Results {
		candidates = append(candidates, provider.Candidate{
			ID:     strconv.FormatInt(result.ID, 10),
			Title:  result.Name,
			Poster: imageURL(posterSize, result.PosterPath),
			Path:   media.Path,
		})
	}
	return candidates, nil
}

// Details fetches the show record plus the season the parsed tokens point
// at, and shapes the compound show/season/episode record. The season title
// is derived from the show title and ordinal so repeated runs resolve the
// same season row.
func (c *TVClient) Details(ctx context.Context, id string, parsed scanner.Parsed) (*provider.TVInfo, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,images,external_ids")
	params.Set("include_image_language", "en,null")
	var show tvDetails
	if err := c.get(ctx, "/tv/"+url.PathEscape(id), params, &show); err != nil {
		return nil, err
	}

	seasonRank := seasonOrdinal(parsed.Season)
	episodeRank := seasonOrdinal(parsed.Episode)
	var season seasonDetails
	seasonPath := fmt.Sprintf("/tv/%s/season/%d", url.PathEscape(id), seasonRank)
	if err := c.get(ctx, seasonPath, url.Values{}, &season); err != nil {
		return nil, err
	}

	ttid := show.ExternalIDs.IMDBID
	contentID := strconv.FormatInt(show.ID, 10)

	info := &provider.TVInfo{
		Show: provider.ShowInfo{
			TTID:        ttid,
			ContentID:   contentID,
			Title:       show.Name,
			SearchTitle: scanner.SearchTitle(show.Name),
			ReleaseDate: airDate(show.FirstAirDate),
			Rating:      show.VoteAverage,
			Synopsis:    show.Overview,
		},
		Season: provider.SeasonInfo{
			TTID:        ttid,
			ContentID:   contentID,
			Title:       fmt.Sprintf("%s Season %d", show.Name, seasonRank),
			SearchTitle: scanner.SearchTitle(show.Name),
			Rank:        seasonRank,
			ReleaseDate: airDate(season.AirDate),
			Rating:      show.VoteAverage,
			Synopsis:    season.Overview,
		},
	}
	for _, poster := range show.Images.Posters {
		info.Show.Images.Posters = append(info.Show.Images.Posters, imageURL(posterSize, poster.FilePath))
		info.Show.Images.Thumbnails = append(info.Show.Images.Thumbnails, imageURL(thumbnailSize, poster.FilePath))
	}
	for _, backdrop := range show.Images.Backdrops {
		info.Show.Images.Wallpapers = append(info.Show.Images.Wallpapers, imageURL(wallpaperSize, backdrop.FilePath))
	}
	if season.PosterPath != "" {
		info.Season.Images.Posters = []string{imageURL(posterSize, season.PosterPath)}
		info.Season.Images.Thumbnails = []string{imageURL(thumbnailSize, season.PosterPath)}
	}
	info.Season.Images.Wallpapers = info.Show.Images.Wallpapers
	for _, cast := range show.Credits.Cast {
		person := provider.Person{Name: cast.Name, Role: provider.RoleActor}
		info.Show.Persons = append(info.Show.Persons, person)
		info.Season.Persons = append(info.Season.Persons, person)
	}
	for _, genre := range show.Genres {
		info.Show.Genres = append(info.Show.Genres, genre.Name)
		info.Season.Genres = append(info.Season.Genres, genre.Name)
	}

	info.Episode = c.episodeInfo(&show, &season, seasonRank, episodeRank)
	return info, nil
}

// episodeInfo shapes the episode-level record from the season response,
// falling back to a generic title when the episode is not listed.
func (c *TVClient) episodeInfo(show *tvDetails, season *seasonDetails, seasonRank, episodeRank int) provider.EpisodeInfo {
	info := provider.EpisodeInfo{
		Title:       fmt.Sprintf("%s S%02dE%02d", show.Name, seasonRank, episodeRank),
		Rank:        episodeRank,
		ReleaseDate: provider.DefaultReleaseDate,
	}
	for _, episode := range season.Episodes {
		if episode.EpisodeNumber != episodeRank {
			continue
		}
		if episode.Name != "" {
			info.Title = episode.Name
		}
		info.ContentID = strconv.FormatInt(episode.ID, 10)
		info.ReleaseDate = airDate(episode.AirDate)
		info.Rating = episode.VoteAverage
		info.Runtime = episode.Runtime * 60
		info.Synopsis = episode.Overview
		for _, crew := range episode.Crew {
			if crew.Job == provider.RoleDirector {
				info.Persons = append(info.Persons, provider.Person{Name: crew.Name, Role: provider.RoleDirector})
			}
		}
		for _, guest := range episode.GuestStars {
			info.Persons = append(info.Persons, provider.Person{Name: guest.Name, Role: provider.RoleActor})
		}
		break
	}
	info.SearchTitle = scanner.SearchTitle(info.Title)
	info.Genres = append(info.Genres, genreNames(show)...)
	return info
}

func genreNames(show *tvDetails) []string {
	names := make([]string, 0, len(show.Genres))
	for _, genre := range show.Genres {
		names = append(names, genre.Name)
	}
	return names
}

func airDate(date string) string {
	if date == "" {
		return provider.DefaultReleaseDate
	}
	return date
}

func seasonOrdinal(token string) int {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
