package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nmjcat/internal/provider"
	"nmjcat/internal/provider/tmdb"
	"nmjcat/internal/scanner"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestSearchCleansTitleAndMapsCandidates(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "key" {
			t.Fatalf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":19995,"title":"Avatar","poster_path":"/p.jpg"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	media := scanner.NewMediaFile("Avatar.2011.FRENCH.DVDRip.avi", "")
	candidates, err := client.Search(context.Background(), media)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotQuery != "avatar" {
		t.Errorf("query = %q, want cleaned title avatar", gotQuery)
	}
	if len(candidates) != 1 || candidates[0].ID != "19995" {
		t.Fatalf("candidates = %#v", candidates)
	}
	if !strings.Contains(candidates[0].Poster, "/w500/p.jpg") {
		t.Errorf("poster url = %q", candidates[0].Poster)
	}
}

func TestSearchNoResultsIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Search(context.Background(), scanner.NewMediaFile("unknown.avi", ""))
	if !errors.Is(err, provider.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDetailsShapesRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/19995" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 19995,
			"imdb_id": "tt0499549",
			"title": "Avatar",
			"overview": "A marine on an alien moon.",
			"release_date": "2009-12-16",
			"vote_average": 7.5,
			"runtime": 162,
			"genres": [{"name":"Action"},{"name":"Science Fiction"}],
			"images": {
				"posters": [{"file_path":"/p.jpg"}],
				"backdrops": [{"file_path":"/b.jpg"}]
			},
			"credits": {
				"cast": [{"name":"Sam Worthington"}],
				"crew": [{"name":"James Cameron","job":"Director"},{"name":"Someone Else","job":"Producer"}]
			}
		}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	info, err := client.Details(context.Background(), "19995")
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if info.TTID != "tt0499549" || info.ContentID != "19995" {
		t.Errorf("ids = %q/%q", info.TTID, info.ContentID)
	}
	if info.Year != "2009" {
		t.Errorf("year = %q, want 2009", info.Year)
	}
	if info.Runtime != 162*60 {
		t.Errorf("runtime = %d seconds, want %d", info.Runtime, 162*60)
	}
	if info.SearchTitle != "Avatar" {
		t.Errorf("search title = %q", info.SearchTitle)
	}
	if len(info.Images.Posters) != 1 || !strings.Contains(info.Images.Posters[0], "/w500/p.jpg") {
		t.Errorf("posters = %v", info.Images.Posters)
	}
	if len(info.Images.Thumbnails) != 1 || !strings.Contains(info.Images.Thumbnails[0], "/w154/p.jpg") {
		t.Errorf("thumbnails = %v", info.Images.Thumbnails)
	}
	if len(info.Images.Wallpapers) != 1 || !strings.Contains(info.Images.Wallpapers[0], "/original/b.jpg") {
		t.Errorf("wallpapers = %v", info.Images.Wallpapers)
	}
	if len(info.Persons) != 2 {
		t.Fatalf("persons = %v", info.Persons)
	}
	if info.Persons[0].Role != provider.RoleDirector || info.Persons[0].Name != "James Cameron" {
		t.Errorf("first person = %v, want director credit", info.Persons[0])
	}
	if info.Persons[1].Role != provider.RoleActor {
		t.Errorf("second person = %v, want cast credit", info.Persons[1])
	}
	if len(info.Genres) != 2 {
		t.Errorf("genres = %v", info.Genres)
	}
}

func TestDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Details(context.Background(), "0"); !errors.Is(err, provider.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTVDetailsShapesCompoundRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/tv/5920":
			_, _ = w.Write([]byte(`{
				"id": 5920,
				"name": "The Mentalist",
				"overview": "A fake psychic consults.",
				"first_air_date": "2008-09-23",
				"vote_average": 8.1,
				"genres": [{"name":"Drama"}],
				"images": {"posters":[{"file_path":"/sp.jpg"}],"backdrops":[{"file_path":"/sb.jpg"}]},
				"credits": {"cast":[{"name":"Simon Baker"}]},
				"external_ids": {"imdb_id":"tt1196946"}
			}`))
		case "/tv/5920/season/2":
			_, _ = w.Write([]byte(`{
				"poster_path": "/season2.jpg",
				"overview": "Second season.",
				"air_date": "2009-09-24",
				"episodes": [{
					"id": 123456,
					"episode_number": 21,
					"name": "Red Letter",
					"overview": "An episode.",
					"air_date": "2010-04-29",
					"vote_average": 7.9,
					"runtime": 43,
					"crew": [{"name":"A Director","job":"Director"}],
					"guest_stars": [{"name":"A Guest"}]
				}]
			}`))
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.NewTV("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("NewTV returned error: %v", err)
	}

	parsed := scanner.Parsed{ShowName: "the mentalist", Season: "02", Episode: "21"}
	info, err := client.Details(context.Background(), "5920", parsed)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if info.Show.TTID != "tt1196946" {
		t.Errorf("show ttid = %q", info.Show.TTID)
	}
	if info.Season.Title != "The Mentalist Season 2" {
		t.Errorf("season title = %q", info.Season.Title)
	}
	if info.Season.Rank != 2 {
		t.Errorf("season rank = %d", info.Season.Rank)
	}
	if info.Episode.Title != "Red Letter" || info.Episode.Rank != 21 {
		t.Errorf("episode = %q rank %d", info.Episode.Title, info.Episode.Rank)
	}
	if info.Episode.Runtime != 43*60 {
		t.Errorf("episode runtime = %d, want seconds", info.Episode.Runtime)
	}
	if len(info.Episode.Persons) != 2 {
		t.Errorf("episode persons = %v", info.Episode.Persons)
	}
}
