package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nmjcat/internal/images"
	"nmjcat/internal/logging"
	"nmjcat/internal/provider"
	"nmjcat/internal/scanner"
	"nmjcat/internal/store"
)

// writer holds the pieces shared by the movie and TV strategies.
type writer struct {
	store  *store.Store
	images ImageStore
	logger *slog.Logger
}

func newWriter(st *store.Store, imgs ImageStore, logger *slog.Logger) writer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return writer{store: st, images: imgs, logger: logger}
}

// ensureVideo returns the VIDEOS row id for the file, inserting it on first
// sight. Inserting the same path twice yields the same id.
func (w *writer) ensureVideo(ctx context.Context, media *scanner.MediaFile) (int64, error) {
	existing, err := w.store.First(ctx, store.Videos, store.Query{Eq: store.Values{"path": media.RelativePath}})
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID(), nil
	}
	return w.store.Insert(ctx, store.Videos, store.Values{
		"path":         media.RelativePath,
		"file_type":    TitleTypeMovie,
		"scan_dirs_id": rootScanDirsID,
		"create_time":  time.Now().Format(store.TimeFormat),
		"update_state": updateStateComplete,
	})
}

// genreID returns the VIDEO_GENRES id for a genre name, inserting it when
// unseen.
func (w *writer) genreID(ctx context.Context, name string) (int64, error) {
	existing, err := w.store.First(ctx, store.VideoGenres, store.Query{Eq: store.Values{"name": name}})
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID(), nil
	}
	return w.store.Insert(ctx, store.VideoGenres, store.Values{"name": name})
}

// personID returns the VIDEO_PERSONS id for a person name, inserting it when
// unseen.
func (w *writer) personID(ctx context.Context, name string) (int64, error) {
	existing, err := w.store.First(ctx, store.VideoPersons, store.Query{Eq: store.Values{"name": name}})
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID(), nil
	}
	return w.store.Insert(ctx, store.VideoPersons, store.Values{"name": name})
}

func (w *writer) insertGenres(ctx context.Context, showID int64, genres []string) error {
	for _, genre := range genres {
		genreID, err := w.genreID(ctx, genre)
		if err != nil {
			return err
		}
		if _, err := w.store.Insert(ctx, store.ShowsGenres, store.Values{"genres_id": genreID, "shows_id": showID}); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) insertPersons(ctx context.Context, showID int64, persons []provider.Person) error {
	for _, person := range persons {
		personID, err := w.personID(ctx, person.Name)
		if err != nil {
			return err
		}
		personType, ok := personTypeByRole[person.Role]
		if !ok {
			personType = personTypeCast
		}
		if _, err := w.store.Insert(ctx, store.ShowsPersons, store.Values{
			"persons_id":  personID,
			"shows_id":    showID,
			"person_type": personType,
		}); err != nil {
			return err
		}
	}
	return nil
}

// shelfGroupID resolves the SHOW_GROUPS row for a search title. Grouping is
// by first letter after diacritic folding, so "Éternel" shelves under E;
// anything non-alphabetic shelves under "0-9".
func (w *writer) shelfGroupID(ctx context.Context, searchTitle string) (int64, error) {
	name := "0-9"
	folded := strings.ToUpper(scanner.FoldDiacritics(strings.TrimSpace(searchTitle)))
	if folded != "" && folded[0] >= 'A' && folded[0] <= 'Z' {
		name = folded[:1]
	}
	group, err := w.store.First(ctx, store.ShowGroups, store.Query{Eq: store.Values{"name": name}})
	if err != nil {
		return 0, err
	}
	if group == nil {
		return 0, fmt.Errorf("shelf group %q missing", name)
	}
	return group.ID(), nil
}

func (w *writer) insertGroup(ctx context.Context, showID int64, searchTitle, titleType string) error {
	groupID, err := w.shelfGroupID(ctx, searchTitle)
	if err != nil {
		return err
	}
	exists, err := w.store.Contains(ctx, store.ShowGroupsShows, store.Values{"groups_id": groupID, "shows_id": showID})
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = w.store.Insert(ctx, store.ShowGroupsShows, store.Values{
		"groups_id":  groupID,
		"shows_id":   showID,
		"title_type": titleType,
	})
	return err
}

// backfillImages fills the VIDEO_POSTERS fields that are still empty, each
// one independently, downloading the first reference of the matching role.
// A populated field is never overwritten; a failed download is logged and
// the field left empty so a later run retries it.
func (w *writer) backfillImages(ctx context.Context, showID int64, imgs provider.Images) error {
	poster, err := w.store.First(ctx, store.VideoPosters, store.Query{Eq: store.Values{"id": showID}})
	if err != nil {
		return err
	}
	if poster == nil {
		return nil
	}
	if poster.Text("poster") == "" {
		if path := w.download(ctx, imgs.Posters, images.KindPoster); path != "" {
			if err := w.store.Update(ctx, poster, store.Values{"poster": path}); err != nil {
				return err
			}
		}
	}
	if poster.Text("thumbnail") == "" {
		if path := w.download(ctx, imgs.Thumbnails, images.KindThumbnail); path != "" {
			if err := w.store.Update(ctx, poster, store.Values{"thumbnail": path}); err != nil {
				return err
			}
		}
	}
	if poster.Text("wallpaper") == "" {
		if path := w.download(ctx, imgs.Wallpapers, images.KindWallpaper); path != "" {
			if err := w.store.Update(ctx, poster, store.Values{"wallpaper": path}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *writer) download(ctx context.Context, urls []string, kind images.Kind) string {
	if w.images == nil || len(urls) == 0 || urls[0] == "" {
		return ""
	}
	path, err := w.images.Download(ctx, urls[0], kind)
	if err != nil {
		w.logger.Warn("image download failed", "kind", string(kind), "url", urls[0], "error", err)
		return ""
	}
	return path
}

// backfillSynopsis replaces an empty stored summary. A non-empty summary is
// left alone.
func (w *writer) backfillSynopsis(ctx context.Context, showID int64, summary string) error {
	synopsis, err := w.store.First(ctx, store.Synopsises, store.Query{Eq: store.Values{"id": showID, "summary": ""}})
	if err != nil {
		return err
	}
	if synopsis == nil {
		return nil
	}
	return w.store.Update(ctx, synopsis, store.Values{"summary": summary})
}

// releaseYear extracts the display year from an ISO release date, falling
// back to the sentinel year.
func releaseYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return provider.DefaultYear
}
