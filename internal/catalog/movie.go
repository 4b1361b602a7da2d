package catalog

import (
	"context"
	"log/slog"
	"time"

	"nmjcat/internal/provider"
	"nmjcat/internal/scanner"
	"nmjcat/internal/store"
)

// MovieWriter materializes movie metadata into the catalog.
type MovieWriter struct {
	writer
}

func NewMovieWriter(st *store.Store, imgs ImageStore, logger *slog.Logger) *MovieWriter {
	return &MovieWriter{writer: newWriter(st, imgs, logger)}
}

// Update inserts the catalog entry for a movie file when none exists, then
// backfills synopsis and images wherever they are still empty. Running it
// again for the same file never duplicates rows. Returns the SHOWS id.
func (w *MovieWriter) Update(ctx context.Context, media *scanner.MediaFile, info *provider.MovieInfo) (int64, error) {
	entry, err := FindEntry(ctx, w.store, media.RelativePath)
	if err != nil {
		return 0, err
	}
	videoID, err := w.ensureVideo(ctx, media)
	if err != nil {
		return 0, err
	}

	var showID int64
	if entry.Show != nil {
		showID = entry.Show.ID()
	} else {
		showID, err = w.insertShow(ctx, media, videoID, info)
		if err != nil {
			return 0, err
		}
	}

	if err := w.backfillImages(ctx, showID, info.Images); err != nil {
		return 0, err
	}
	if err := w.backfillSynopsis(ctx, showID, info.Synopsis); err != nil {
		return 0, err
	}
	return showID, nil
}

func (w *MovieWriter) insertShow(ctx context.Context, media *scanner.MediaFile, videoID int64, info *provider.MovieInfo) (int64, error) {
	now := time.Now().Format(store.TimeFormat)
	showID, err := w.store.Insert(ctx, store.Shows, store.Values{
		"title":        info.Title,
		"search_title": info.SearchTitle,
		"total_item":   1,
		"year":         info.Year,
		"release_date": info.ReleaseDate,
		"rating":       info.Rating,
		"runtime":      info.Runtime,
		"create_time":  now,
		"ttid":         info.TTID,
		"update_state": updateStateComplete,
		"title_type":   TitleTypeMovie,
		"content_ttid": info.ContentID,
		"three_d":      "0",
	})
	if err != nil {
		return 0, err
	}
	if _, err := w.store.Insert(ctx, store.ShowsVideos, store.Values{"shows_id": showID, "videos_id": videoID}); err != nil {
		return 0, err
	}
	if _, err := w.store.Insert(ctx, store.Synopsises, store.Values{"id": showID, "summary": info.Synopsis}); err != nil {
		return 0, err
	}
	if _, err := w.store.Insert(ctx, store.VideoProperties, store.Values{
		"id":      showID,
		"runtime": info.Runtime,
		"system":  media.System,
	}); err != nil {
		return 0, err
	}
	if _, err := w.store.Insert(ctx, store.VideoPosters, store.Values{
		"id":          showID,
		"type":        "0",
		"create_time": now,
	}); err != nil {
		return 0, err
	}
	if err := w.insertGenres(ctx, showID, info.Genres); err != nil {
		return 0, err
	}
	if err := w.insertPersons(ctx, showID, info.Persons); err != nil {
		return 0, err
	}
	if err := w.insertGroup(ctx, showID, info.SearchTitle, TitleTypeMovie); err != nil {
		return 0, err
	}
	w.logger.Info("movie catalogued", "title", info.Title, "show_id", showID)
	return showID, nil
}
