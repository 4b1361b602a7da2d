package catalog

import (
	"context"
	"log/slog"

	"nmjcat/internal/logging"
	"nmjcat/internal/store"
)

// Cleaner removes the catalog rows backing a file that disappeared from
// disk. Cleanup is best effort over potentially inconsistent rows: each step
// runs even when an earlier one failed, failures are logged, and only the
// count of failed steps is surfaced.
type Cleaner struct {
	store  *store.Store
	images ImageStore
	logger *slog.Logger
}

func NewCleaner(st *store.Store, imgs ImageStore, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cleaner{store: st, images: imgs, logger: logger}
}

// sweep runs independent cleanup steps, logging failures and counting them
// instead of aborting.
type sweep struct {
	logger *slog.Logger
	failed int
}

func (s *sweep) step(name string, fn func() error) {
	if err := fn(); err != nil {
		s.logger.Warn("cleanup step failed", "step", name, "error", err)
		s.failed++
	}
}

// Clean deletes everything recorded for the file at relativePath: the
// catalog entry with its synopsis, properties and video link, the junction
// rows, and finally the image set row after removing its files from disk.
// A file with no catalog entry is left alone.
func (c *Cleaner) Clean(ctx context.Context, relativePath string) error {
	entry, err := FindEntry(ctx, c.store, relativePath)
	if err != nil {
		return err
	}
	if entry.Show == nil {
		return nil
	}
	showID := entry.Show.ID()
	c.logger.Info("cleaning catalog entry", "path", relativePath, "show_id", showID)

	sw := &sweep{logger: c.logger}
	sw.step("properties", func() error { return c.deleteByID(ctx, store.VideoProperties, showID) })
	sw.step("synopsis", func() error { return c.deleteByID(ctx, store.Synopsises, showID) })
	sw.step("video link", func() error { return c.store.Delete(ctx, entry.Link) })
	sw.step("catalog entry", func() error { return c.store.Delete(ctx, entry.Show) })
	sw.step("video file", func() error { return c.store.Delete(ctx, entry.Video) })
	for _, junction := range []*store.Table{store.ShowsGenres, store.ShowsPersons, store.ShowGroupsShows} {
		table := junction
		sw.step(table.Name, func() error { return c.deleteJunctions(ctx, table, showID) })
	}
	sw.step("image set", func() error { return c.deleteImages(ctx, showID) })

	if sw.failed > 0 {
		c.logger.Warn("cleanup finished with failures", "path", relativePath, "failed_steps", sw.failed)
	}
	return nil
}

func (c *Cleaner) deleteByID(ctx context.Context, table *store.Table, showID int64) error {
	record, err := c.store.First(ctx, table, store.Query{Eq: store.Values{"id": showID}})
	if err != nil || record == nil {
		return err
	}
	return c.store.Delete(ctx, record)
}

func (c *Cleaner) deleteJunctions(ctx context.Context, table *store.Table, showID int64) error {
	records, err := c.store.Query(ctx, table, store.Query{Eq: store.Values{"shows_id": showID}})
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := c.store.Delete(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// deleteImages removes the image files referenced by the poster row, best
// effort, then deletes the row itself.
func (c *Cleaner) deleteImages(ctx context.Context, showID int64) error {
	poster, err := c.store.First(ctx, store.VideoPosters, store.Query{Eq: store.Values{"id": showID}})
	if err != nil || poster == nil {
		return err
	}
	if c.images != nil {
		for _, field := range []string{"poster", "thumbnail", "wallpaper"} {
			if path := poster.Text(field); path != "" {
				if err := c.images.Remove(path); err != nil {
					c.logger.Warn("image removal failed", "path", path, "error", err)
				}
			}
		}
	}
	return c.store.Delete(ctx, poster)
}
