// Package tmdb implements the movie metadata provider against The Movie
// Database HTTP API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nmjcat/internal/provider"
	"nmjcat/internal/scanner"
)

const imageBaseURL = "https://image.tmdb.org/t/p"

// Image sizes requested per role, matching the jukebox layout: full posters,
// small thumbnails, original-size wallpapers.
const (
	posterSize    = "w500"
	thumbnailSize = "w154"
	wallpaperSize = "original"
)

type searchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type movieDetails struct {
	ID          int64   `json:"id"`
	IMDBID      string  `json:"imdb_id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Runtime     int     `json:"runtime"`
	Genres      []struct {
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
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits"`
}

type imageRef struct {
	FilePath string `json:"file_path"`
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	cleaner    *scanner.TitleCleaner
}

var _ provider.MovieProvider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cleaner:    scanner.NewMovieCleaner(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries TMDB with the cleaned filename title. A zero-result
// response maps to provider.ErrNotFound.
func (c *Client) Search(ctx context.Context, media *scanner.MediaFile) ([]provider.Candidate, error) {
	query := c.cleaner.Clean(media.Title)
	if query == "" {
		return nil, provider.ErrNotFound
	}

	params := url.Values{}
	params.Set("query", query)
	var resp searchResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: %q", provider.ErrNotFound, query)
	}

	candidates := make([]provider.Candidate, 0, len(resp.Results))
	for _, result := range resp.Results {
		candidates = append(candidates, provider.Candidate{
			ID:     strconv.FormatInt(result.ID, 10),
			Title:  result.Title,
			Poster: imageURL(posterSize, result.PosterPath),
			Path:   media.Path,
		})
	}
	return candidates, nil
}

// Details fetches the full movie record, credits and images included.
func (c *Client) Details(ctx context.Context, id string) (*provider.MovieInfo, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,images")
	params.Set("include_image_language", "en,null")
	var details movieDetails
	if err := c.get(ctx, "/movie/"+url.PathEscape(id), params, &details); err != nil {
		return nil, err
	}

	info := &provider.MovieInfo{
		TTID:        details.IMDBID,
		ContentID:   strconv.FormatInt(details.ID, 10),
		Title:       strings.TrimSpace(details.Title),
		SearchTitle: scanner.SearchTitle(details.Title),
		Year:        releaseYear(details.ReleaseDate),
		ReleaseDate: details.ReleaseDate,
		Rating:      details.VoteAverage,
		Runtime:     details.Runtime * 60,
		Synopsis:    details.Overview,
	}
	for _, poster := range details.Images.Posters {
		info.Images.Posters = append(info.Images.Posters, imageURL(posterSize, poster.FilePath))
		info.Images.Thumbnails = append(info.Images.Thumbnails, imageURL(thumbnailSize, poster.FilePath))
	}
	for _, backdrop := range details.Images.Backdrops {
		info.Images.Wallpapers = append(info.Images.Wallpapers, imageURL(wallpaperSize, backdrop.FilePath))
	}
	for _, crew := range details.Credits.Crew {
		if crew.Job == provider.RoleDirector {
			info.Persons = append(info.Persons, provider.Person{Name: crew.Name, Role: provider.RoleDirector})
		}
	}
	for _, cast := range details.Credits.Cast {
		info.Persons = append(info.Persons, provider.Person{Name: cast.Name, Role: provider.RoleActor})
	}
	for _, genre := range details.Genres {
		info.Genres = append(info.Genres, genre.Name)
	}
	return info, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build tmdb request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return provider.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb request %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

func imageURL(size, filePath string) string {
	if filePath == "" {
		return ""
	}
	if !strings.HasPrefix(filePath, "/") {
		filePath = "/" + filePath
	}
	return imageBaseURL + "/" + size + filePath
}

func releaseYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return provider.DefaultYear
}
