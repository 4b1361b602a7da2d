package catalog_test

import (
	"context"
	"path"
	"testing"

	"nmjcat/internal/catalog"
	"nmjcat/internal/images"
	"nmjcat/internal/provider"
	"nmjcat/internal/scanner"
	"nmjcat/internal/store"
	"nmjcat/internal/testsupport"
)

// fakeImages records downloads and returns deterministic relative paths.
type fakeImages struct {
	downloads []string
	removed   []string
}

func (f *fakeImages) Download(_ context.Context, url string, kind images.Kind) (string, error) {
	f.downloads = append(f.downloads, url)
	return "nmj_database/media/video/" + string(kind) + "/" + path.Base(url), nil
}

func (f *fakeImages) Remove(relPath string) error {
	f.removed = append(f.removed, relPath)
	return nil
}

func movieFixture() *provider.MovieInfo {
	return &provider.MovieInfo{
		TTID:        "tt0499549",
		ContentID:   "19995",
		Title:       "Avatar",
		SearchTitle: "Avatar",
		Year:        "2009",
		ReleaseDate: "2009-12-16",
		Rating:      7.5,
		Runtime:     9720,
		Synopsis:    "A paraplegic marine on an alien moon.",
		Images: provider.Images{
			Posters:    []string{"http://img.example/avatar_poster.jpg"},
			Thumbnails: []string{"http://img.example/avatar_thumb.jpg"},
			Wallpapers: []string{"http://img.example/avatar_wall.jpg"},
		},
		Persons: []provider.Person{
			{Name: "Sam Worthington", Role: provider.RoleActor},
			{Name: "James Cameron", Role: provider.RoleDirector},
		},
		Genres: []string{"Action", "Science Fiction"},
	}
}

func TestMovieUpdateIsIdempotent(t *testing.T) {
	st, _ := testsupport.MustOpenStore(t)
	ctx := context.Background()
	writer := catalog.NewMovieWriter(st, &fakeImages{}, nil)
	media := scanner.NewMediaFile("/library/avatar.avi", "avatar.avi")

	first, err := writer.Update(ctx, media, movieFixture())
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := writer.Update(ctx, media, movieFixture())
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if first != second {
		t.Fatalf("show ids differ across runs: %d vs %d", first, second)
	}

	for _, check := range []struct {
		table   *store.Table
		filters store.Values
		want    int
	}{
		{store.Videos, store.Values{"path": "avatar.avi"}, 1},
		{store.Shows, store.Values{"title": "Avatar"}, 1},
		{store.ShowsVideos, store.Values{"shows_id": first}, 1},
		{store.Synopsises, store.Values{"id": first}, 1},
		{store.VideoPosters, store.Values{"id": first}, 1},
	} {
		count, err := st.Count(ctx, check.table, check.filters)
		if err != nil {
			t.Fatalf("count %s: %v", check.table.Name, err)
		}
		if count != check.want {
			t.Errorf("%s rows = %d, want %d", check.table.Name, count, check.want)
		}
	}
}

func TestMovieUpdateWritesRelations(t *testing.T) {
	st, _ := testsupport.MustOpenStore(t)
	ctx := context.Background()
	writer := catalog.NewMovieWriter(st, &fakeImages{}, nil)
	media := scanner.NewMediaFile("/library/avatar.avi", "avatar.avi")

	showID, err := writer.Update(ctx, media, movieFixture())
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	show, err := st.First(ctx, store.Shows, store.Query{Eq: store.Values{"id": showID}})
	if err != nil {
		t.Fatalf("query show: %v", err)
	}
	if show.Text("title_type") != catalog.TitleTypeMovie {
		t.Errorf("title_type = %q, want movie", show.Text("title_type"))
	}
	if show.Text("year") != "2009" {
		t.Errorf("year = %q, want 2009", show.Text("year"))
	}

	genres, err := st.Count(ctx, store.ShowsGenres, store.Values{"shows_id": showID})
	if err != nil {
		t.Fatalf("count genres: %v", err)
	}
	if genres != 2 {
		t.Errorf("genre junctions = %d, want 2", genres)
	}

	director, err := st.First(ctx, store.VideoPersons, store.Query{Eq: store.Values{"name": "James Cameron"}})
	if err != nil {
		t.Fatalf("query person: %v", err)
	}
	if director == nil {
		t.Fatal("director person row missing")
	}
	credit, err := st.First(ctx, store.ShowsPersons, store.Query{Eq: store.Values{"persons_id": director.ID(), "shows_id": showID}})
	if err != nil {
		t.Fatalf("query credit: %v", err)
	}
	if credit == nil || credit.Text("person_type") != "DIRECTOR" {
		t.Errorf("director credit = %v, want DIRECTOR person type", credit)
	}

	group, err := st.First(ctx, store.ShowGroups, store.Query{Eq: store.Values{"name": "A"}})
	if err != nil {
		t.Fatalf("query group: %v", err)
	}
	shelved, err := st.Contains(ctx, store.ShowGroupsShows, store.Values{"groups_id": group.ID(), "shows_id": showID})
	if err != nil {
		t.Fatalf("contains shelf: %v", err)
	}
	if !shelved {
		t.Error("movie not shelved under group A")
	}

	props, err := st.First(ctx, store.VideoProperties, store.Query{Eq: store.Values{"id": showID}})
	if err != nil {
		t.Fatalf("query properties: %v", err)
	}
	if props.Text("system") != "AVI" {
		t.Errorf("container system = %q, want AVI", props.Text("system"))
	}
}

func TestImageBackfillIsOneShot(t *testing.T) {
	st, _ := testsupport.MustOpenStore(t)
	ctx := context.Background()
	imgs := &fakeImages{}
	writer := catalog.NewMovieWriter(st, imgs, nil)
	media := scanner.NewMediaFile("/library/avatar.avi", "avatar.avi")

	showID, err := writer.Update(ctx, media, movieFixture())
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	poster, err := st.First(ctx, store.VideoPosters, store.Query{Eq: store.Values{"id": showID}})
	if err != nil {
		t.Fatalf("query poster: %v", err)
	}
	firstPoster := poster.Text("poster")
	if firstPoster == "" {
		t.Fatal("poster not populated on first pass")
	}

	other := movieFixture()
	other.Images.Posters = []string{"http://img.example/other_poster.jpg"}
	if _, err := writer.Update(ctx, media, other); err != nil {
		t.Fatalf("second update: %v", err)
	}

	poster, err = st.First(ctx, store.VideoPosters, store.Query{Eq: store.Values{"id": showID}})
	if err != nil {
		t.Fatalf("requery poster: %v", err)
	}
	if poster.Text("poster") != firstPoster {
		t.Fatalf("poster overwritten: %q -> %q", firstPoster, poster.Text("poster"))
	}
}

func TestNeedsUpdate(t *testing.T) {
	st, _ := testsupport.MustOpenStore(t)
	ctx := context.Background()
	media := scanner.NewMediaFile("/library/avatar.avi", "avatar.avi")

	needed, err := catalog.NeedsUpdate(ctx, st, media.RelativePath)
	if err != nil {
		t.Fatalf("needs update: %v", err)
	}
	if !needed {
		t.Fatal("fresh file should need an update")
	}

	writer := catalog.NewMovieWriter(st, &fakeImages{}, nil)
	if _, err := writer.Update(ctx, media, movieFixture()); err != nil {
		t.Fatalf("update: %v", err)
	}

	needed, err = catalog.NeedsUpdate(ctx, st, media.RelativePath)
	if err != nil {
		t.Fatalf("needs update: %v", err)
	}
	if needed {
		t.Fatal("complete entry should not need an update")
	}
}

func TestDefaultMetadataStillNeedsUpdate(t *testing.T) {
	st, _ := testsupport.MustOpenStore(t)
	ctx := context.Background()
	media := scanner.NewMediaFile("/library/obscure film.avi", "obscure film.avi")

	writer := catalog.NewMovieWriter(st, &fakeImages{}, nil)
	if _, err := writer.Update(ctx, media, provider.DefaultMovie(media)); err != nil {
		t.Fatalf("update: %v", err)
	}

	needed, err := catalog.NeedsUpdate(ctx, st, media.RelativePath)
	if err != nil {
		t.Fatalf("needs update: %v", err)
	}
	if !needed {
		t.Fatal("entry with empty synopsis and images should still need an update")
	}

	show, err := st.First(ctx, store.Shows, store.Query{Eq: store.Values{"title": "obscure film"}})
	if err != nil {
		t.Fatalf("query show: %v", err)
	}
	if show == nil {
		t.Fatal("default metadata insert missing")
	}
	if show.Text("year") != provider.DefaultYear {
		t.Errorf("year = %q, want sentinel %q", show.Text("year"), provider.DefaultYear)
	}
}
