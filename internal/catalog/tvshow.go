package catalog

import (
	"context"
	"log/slog"
	"time"

	"nmjcat/internal/provider"
	"nmjcat/internal/scanner"
	"nmjcat/internal/store"
)

// TVWriter materializes episode metadata into the catalog as a three-level
// show, season, episode graph.
type TVWriter struct {
	writer
}

func NewTVWriter(st *store.Store, imgs ImageStore, logger *slog.Logger) *TVWriter {
	return &TVWriter{writer: newWriter(st, imgs, logger)}
}

// Update inserts the show, season and episode rows a file needs, reusing the
// ones that already exist. The show is keyed by (ttid, series title type);
// the season by (title, season title type), since seasons carry no external
// identifier of their own. The episode is inserted only when the file has no
// catalog entry yet, and bumps TOTAL_ITEM on both its show and season.
// Returns the show's SHOWS id.
func (w *TVWriter) Update(ctx context.Context, media *scanner.MediaFile, info *provider.TVInfo) (int64, error) {
	entry, err := FindEntry(ctx, w.store, media.RelativePath)
	if err != nil {
		return 0, err
	}
	videoID, err := w.ensureVideo(ctx, media)
	if err != nil {
		return 0, err
	}

	showID, err := w.ensureShow(ctx, &info.Show)
	if err != nil {
		return 0, err
	}
	if err := w.backfillImages(ctx, showID, info.Show.Images); err != nil {
		return 0, err
	}
	if err := w.backfillSynopsis(ctx, showID, info.Show.Synopsis); err != nil {
		return 0, err
	}

	seasonID, err := w.ensureSeason(ctx, &info.Season)
	if err != nil {
		return 0, err
	}
	if err := w.backfillImages(ctx, seasonID, info.Season.Images); err != nil {
		return 0, err
	}
	if err := w.backfillSynopsis(ctx, seasonID, info.Season.Synopsis); err != nil {
		return 0, err
	}

	if entry.Show == nil {
		if err := w.insertEpisode(ctx, media, videoID, showID, seasonID, info); err != nil {
			return 0, err
		}
	}
	return showID, nil
}

func (w *TVWriter) ensureShow(ctx context.Context, show *provider.ShowInfo) (int64, error) {
	existing, err := w.store.First(ctx, store.Shows, store.Query{Eq: store.Values{
		"ttid":       show.TTID,
		"title_type": TitleTypeSeries,
	}})
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID(), nil
	}

	now := time.Now().Format(store.TimeFormat)
	showID, err := w.store.Insert(ctx, store.Shows, store.Values{
		"title":        show.Title,
		"search_title": show.SearchTitle,
		"total_item":   0,
		"year":         releaseYear(show.ReleaseDate),
		"release_date": show.ReleaseDate,
		"rating":       show.Rating,
		"create_time":  now,
		"ttid":         show.TTID,
		"update_state": updateStateComplete,
		"title_type":   TitleTypeSeries,
		"content_ttid": show.ContentID,
		"three_d":      "0",
	})
	if err != nil {
		return 0, err
	}
	if err := w.insertSatellites(ctx, showID, show.Synopsis, now); err != nil {
		return 0, err
	}
	if err := w.insertGenres(ctx, showID, show.Genres); err != nil {
		return 0, err
	}
	if err := w.insertPersons(ctx, showID, show.Persons); err != nil {
		return 0, err
	}
	if err := w.insertGroup(ctx, showID, show.SearchTitle, TitleTypeSeries); err != nil {
		return 0, err
	}
	w.logger.Info("show catalogued", "title", show.Title, "show_id", showID)
	return showID, nil
}

func (w *TVWriter) ensureSeason(ctx context.Context, season *provider.SeasonInfo) (int64, error) {
	existing, err := w.store.First(ctx, store.Shows, store.Query{Eq: store.Values{
		"title":      season.Title,
		"title_type": TitleTypeSeason,
	}})
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID(), nil
	}

	now := time.Now().Format(store.TimeFormat)
	seasonID, err := w.store.Insert(ctx, store.Shows, store.Values{
		"title":        season.Title,
		"search_title": season.SearchTitle,
		"total_item":   0,
		"year":         releaseYear(season.ReleaseDate),
		"release_date": season.ReleaseDate,
		"rating":       season.Rating,
		"create_time":  now,
		"ttid":         season.TTID,
		"update_state": updateStateComplete,
		"title_type":   TitleTypeSeason,
		"content_ttid": season.ContentID,
		"three_d":      "0",
	})
	if err != nil {
		return 0, err
	}
	if err := w.insertSatellites(ctx, seasonID, season.Synopsis, now); err != nil {
		return 0, err
	}
	if err := w.insertGenres(ctx, seasonID, season.Genres); err != nil {
		return 0, err
	}
	if err := w.insertPersons(ctx, seasonID, season.Persons); err != nil {
		return 0, err
	}
	if err := w.insertGroup(ctx, seasonID, season.SearchTitle, TitleTypeSeason); err != nil {
		return 0, err
	}
	w.logger.Info("season catalogued", "title", season.Title, "show_id", seasonID)
	return seasonID, nil
}

func (w *TVWriter) insertEpisode(ctx context.Context, media *scanner.MediaFile, videoID, showID, seasonID int64, info *provider.TVInfo) error {
	episode := &info.Episode
	now := time.Now().Format(store.TimeFormat)
	episodeID, err := w.store.Insert(ctx, store.Shows, store.Values{
		"title":        episode.Title,
		"search_title": episode.SearchTitle,
		"total_item":   1,
		"year":         releaseYear(episode.ReleaseDate),
		"release_date": episode.ReleaseDate,
		"rating":       episode.Rating,
		"create_time":  now,
		"ttid":         episode.TTID,
		"update_state": updateStateComplete,
		"title_type":   TitleTypeMovie,
		"content_ttid": episode.ContentID,
		"three_d":      "0",
	})
	if err != nil {
		return err
	}

	if err := w.bumpTotalItem(ctx, showID); err != nil {
		return err
	}
	if err := w.bumpTotalItem(ctx, seasonID); err != nil {
		return err
	}

	if _, err := w.store.Insert(ctx, store.ShowsVideos, store.Values{"shows_id": episodeID, "videos_id": videoID}); err != nil {
		return err
	}
	if _, err := w.store.Insert(ctx, store.Synopsises, store.Values{"id": episodeID, "summary": episode.Synopsis}); err != nil {
		return err
	}
	if _, err := w.store.Insert(ctx, store.VideoProperties, store.Values{
		"id":      episodeID,
		"runtime": episode.Runtime,
		"system":  media.System,
	}); err != nil {
		return err
	}
	if _, err := w.store.Insert(ctx, store.VideoPosters, store.Values{
		"id":          episodeID,
		"type":        "0",
		"create_time": now,
	}); err != nil {
		return err
	}
	if _, err := w.store.Insert(ctx, store.Episodes, store.Values{
		"episode_id": episodeID,
		"series_id":  showID,
		"season_id":  seasonID,
		"season":     info.Season.Rank,
		"episode":    episode.Rank,
	}); err != nil {
		return err
	}
	if err := w.insertGenres(ctx, episodeID, episode.Genres); err != nil {
		return err
	}
	if err := w.insertPersons(ctx, episodeID, episode.Persons); err != nil {
		return err
	}
	w.logger.Info("episode catalogued", "title", episode.Title, "show_id", episodeID)
	return nil
}

// bumpTotalItem increments TOTAL_ITEM by reading the current value and
// writing current+1. Safe only because runs are serialized by the run lock.
func (w *TVWriter) bumpTotalItem(ctx context.Context, showID int64) error {
	show, err := w.store.First(ctx, store.Shows, store.Query{Eq: store.Values{"id": showID}})
	if err != nil || show == nil {
		return err
	}
	return w.store.Update(ctx, show, store.Values{"total_item": show.Int("total_item") + 1})
}

// insertSatellites adds the empty VIDEO_PROPERTIES, VIDEO_POSTERS and
// SYNOPSISES rows every new show or season entry carries.
func (w *TVWriter) insertSatellites(ctx context.Context, showID int64, synopsis, now string) error {
	if _, err := w.store.Insert(ctx, store.VideoProperties, store.Values{
		"id":      showID,
		"runtime": 0,
	}); err != nil {
		return err
	}
	if _, err := w.store.Insert(ctx, store.VideoPosters, store.Values{
		"id":          showID,
		"type":        "0",
		"create_time": now,
	}); err != nil {
		return err
	}
	if _, err := w.store.Insert(ctx, store.Synopsises, store.Values{"id": showID, "summary": synopsis}); err != nil {
		return err
	}
	return nil
}
