// Package nmjsync orchestrates a full library synchronization run: walk the
// scan root, classify files, fetch metadata, write catalog entries, then
// sweep out entries whose files are gone.
package nmjsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"nmjcat/internal/catalog"
	"nmjcat/internal/images"
	"nmjcat/internal/logging"
	"nmjcat/internal/provider"
	"nmjcat/internal/scanner"
	"nmjcat/internal/store"
)

// Sentinel marker files. Either one in a directory excludes the whole
// subtree from scanning.
const (
	markerNoAll   = ".no_all.nmj"
	markerNoVideo = ".no_video.nmj"
)

// databaseDirName holds the catalog database and media tree; never scanned.
const databaseDirName = "nmj_database"

// discDirName marks a disc layout; its parent directory is one media unit.
const discDirName = "BDMV"

// indexPage redirects the device browser into the jukebox UI. Written to the
// scan root once, on first run.
const indexPage = `<html><head><meta name="Author" content="NMJ"></meta><meta HTTP-EQUIV="Content-Type" content="text/html; charset=UTF-8"></meta>
<script type="text/javascript">
<!--
fixedPath=location.href.replace("index.htm","?filter=7&page=1");
document.write('<meta HTTP-EQUIV="REFRESH" content="0; url='+fixedPath.replace("file:///opt/sybhttpd/localhost.drives","http://localhost.drives:8883")+'"></meta>');
-->
</script>
</head></html>`

// Summary reports what one run did.
type Summary struct {
	Found     int
	Processed int
	Failed    int
	Cleaned   int
}

// Updater drives one synchronization run over a scan root. Runs are
// single-threaded; cross-process exclusion comes from the run lock.
type Updater struct {
	root        string
	store       *store.Store
	classifier  *scanner.Classifier
	movies      provider.MovieProvider
	tv          provider.TVProvider
	movieWriter *catalog.MovieWriter
	tvWriter    *catalog.TVWriter
	cleaner     *catalog.Cleaner
	logger      *slog.Logger
}

// New creates an Updater for the given scan root. Either provider may be
// nil, which turns every lookup of that kind into a permanent miss handled
// by default metadata.
func New(root string, st *store.Store, movies provider.MovieProvider, tv provider.TVProvider, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = logging.NewNop()
	}
	downloader := images.NewDownloader(root, logger)
	return &Updater{
		root:        root,
		store:       st,
		classifier:  scanner.NewClassifier(),
		movies:      movies,
		tv:          tv,
		movieWriter: catalog.NewMovieWriter(st, downloader, logger),
		tvWriter:    catalog.NewTVWriter(st, downloader, logger),
		cleaner:     catalog.NewCleaner(st, downloader, logger),
		logger:      logger,
	}
}

// Run executes one full cycle under the run lock: seed index.htm, scan,
// process every file, then clean. Per-file failures are isolated; the run
// keeps going and reports them in the summary.
func (u *Updater) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	lock, err := acquireRunLock(ctx, u.root)
	if err != nil {
		return summary, err
	}
	defer lock.release()

	if err := u.writeIndexPage(); err != nil {
		u.logger.Warn("index page write failed", "error", err)
	}

	scanned, err := u.ScanDir()
	if err != nil {
		return summary, err
	}
	var medias []*scanner.MediaFile
	for _, media := range scanned {
		if u.classifier.Accept(media) {
			medias = append(medias, media)
		}
	}
	summary.Found = len(medias)
	u.logger.Info("scan complete", "root", u.root, "files", len(scanned), "media", len(medias))

	for rank, media := range medias {
		u.logger.Info("processing media", "rank", rank+1, "total", len(medias), "path", media.RelativePath)
		if err := u.SearchAndAdd(ctx, media); err != nil {
			u.logger.Error("media processing failed", "path", media.RelativePath, "error", err)
			summary.Failed++
			continue
		}
		summary.Processed++
	}

	cleaned, err := u.Clean(ctx)
	summary.Cleaned = cleaned
	if err != nil {
		return summary, err
	}
	return summary, nil
}

// ScanDir walks the scan root and returns every file candidate, in walk
// order. Subtrees holding a sentinel marker contribute nothing; hidden
// directories and the database directory are skipped; a directory with a
// disc layout is returned as a single media unit instead of being entered.
func (u *Updater) ScanDir() ([]*scanner.MediaFile, error) {
	var result []*scanner.MediaFile
	if err := u.walk(u.root, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (u *Updater) walk(dir string, out *[]*scanner.MediaFile) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		names[entry.Name()] = true
	}
	if names[markerNoAll] || names[markerNoVideo] {
		u.logger.Debug("ignoring directory", "dir", dir)
		return nil
	}
	if names[discDirName] {
		media, err := u.mediaFile(dir)
		if err != nil {
			return err
		}
		*out = append(*out, media)
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if name == databaseDirName || name[0] == '.' {
				continue
			}
			if err := u.walk(filepath.Join(dir, name), out); err != nil {
				return err
			}
			continue
		}
		media, err := u.mediaFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		*out = append(*out, media)
	}
	return nil
}

func (u *Updater) mediaFile(path string) (*scanner.MediaFile, error) {
	rel, err := filepath.Rel(u.root, path)
	if err != nil {
		return nil, fmt.Errorf("relativize %s: %w", path, err)
	}
	return scanner.NewMediaFile(path, filepath.ToSlash(rel)), nil
}

// SearchAndAdd classifies one file and writes its catalog entry. Files no
// classifier recognizes are dropped silently, as are files whose entry is
// already complete. A provider miss degrades to default metadata built from
// the filename; only storage failures propagate.
func (u *Updater) SearchAndAdd(ctx context.Context, media *scanner.MediaFile) error {
	if !u.classifier.Accept(media) {
		u.logger.Debug("no classifier for file", "path", media.RelativePath)
		return nil
	}
	needed, err := catalog.NeedsUpdate(ctx, u.store, media.RelativePath)
	if err != nil {
		return err
	}
	if !needed {
		u.logger.Debug("entry already complete", "path", media.RelativePath)
		return nil
	}

	switch media.Kind {
	case scanner.KindMovie:
		info := u.movieInfo(ctx, media)
		_, err := u.movieWriter.Update(ctx, media, info)
		return err
	case scanner.KindEpisode:
		parsed := u.classifier.Parse(media)
		info := u.tvInfo(ctx, media, parsed)
		_, err := u.tvWriter.Update(ctx, media, info)
		return err
	default:
		return nil
	}
}

// movieInfo resolves movie metadata, degrading to defaults on any provider
// failure.
func (u *Updater) movieInfo(ctx context.Context, media *scanner.MediaFile) *provider.MovieInfo {
	if u.movies == nil {
		return provider.DefaultMovie(media)
	}
	candidates, err := u.movies.Search(ctx, media)
	if err != nil || len(candidates) == 0 {
		u.logProviderMiss(media, err)
		return provider.DefaultMovie(media)
	}
	info, err := u.movies.Details(ctx, candidates[0].ID)
	if err != nil {
		u.logProviderMiss(media, err)
		return provider.DefaultMovie(media)
	}
	return info
}

func (u *Updater) tvInfo(ctx context.Context, media *scanner.MediaFile, parsed scanner.Parsed) *provider.TVInfo {
	if u.tv == nil {
		return provider.DefaultTV(media, parsed)
	}
	candidates, err := u.tv.Search(ctx, media, parsed)
	if err != nil || len(candidates) == 0 {
		u.logProviderMiss(media, err)
		return provider.DefaultTV(media, parsed)
	}
	info, err := u.tv.Details(ctx, candidates[0].ID, parsed)
	if err != nil {
		u.logProviderMiss(media, err)
		return provider.DefaultTV(media, parsed)
	}
	return info
}

func (u *Updater) logProviderMiss(media *scanner.MediaFile, err error) {
	if err == nil || errors.Is(err, provider.ErrNotFound) {
		u.logger.Info("no metadata found, using defaults", "path", media.RelativePath)
		return
	}
	u.logger.Warn("provider lookup failed, using defaults", "path", media.RelativePath, "error", err)
}

// Clean removes catalog entries for files that no longer exist on disk.
// Returns the number of entries cleaned. Only movie entries have a cleanup
// strategy; an orphaned episode is logged and left in place.
func (u *Updater) Clean(ctx context.Context) (int, error) {
	videos, err := u.store.Query(ctx, store.Videos, store.Query{})
	if err != nil {
		return 0, err
	}
	cleaned := 0
	for _, video := range videos {
		rel := video.Text("path")
		full := filepath.Join(u.root, filepath.FromSlash(rel))
		if _, err := os.Stat(full); err == nil {
			continue
		}
		u.logger.Info("file gone, cleaning entry", "path", rel)

		media := scanner.NewMediaFile(full, rel)
		if !u.classifier.Accept(media) {
			u.logger.Warn("unknown media type, skipping cleanup", "path", rel)
			continue
		}
		if media.Kind != scanner.KindMovie {
			u.logger.Warn("no cleanup strategy for media kind", "path", rel, "kind", string(media.Kind))
			continue
		}
		if err := u.cleaner.Clean(ctx, rel); err != nil {
			u.logger.Error("cleanup failed", "path", rel, "error", err)
			continue
		}
		cleaned++
	}
	return cleaned, nil
}

// CleanNames renames scanned files to their cleaned titles, keeping the
// extension. Intended to run before cataloguing so stored paths match.
func (u *Updater) CleanNames() error {
	medias, err := u.ScanDir()
	if err != nil {
		return err
	}
	for _, media := range medias {
		if !u.classifier.Accept(media) {
			continue
		}
		title := u.classifier.CleanTitle(media)
		if title == "" {
			continue
		}
		newPath := filepath.Join(filepath.Dir(media.Path), title+media.Extension)
		if newPath == media.Path {
			continue
		}
		u.logger.Info("renaming file", "from", media.Path, "to", newPath)
		if err := os.Rename(media.Path, newPath); err != nil {
			return fmt.Errorf("rename %s: %w", media.Path, err)
		}
	}
	return nil
}

func (u *Updater) writeIndexPage() error {
	index := filepath.Join(u.root, "index.htm")
	if _, err := os.Stat(index); err == nil {
		return nil
	}
	return os.WriteFile(index, []byte(indexPage), 0o644)
}
