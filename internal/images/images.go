// Package images downloads artwork into the jukebox media tree and removes
// it again when catalog entries are cleaned up.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"nmjcat/internal/logging"
)

// Kind selects the artwork role, which decides filename prefix and target
// directory.
type Kind string

const (
	KindPoster    Kind = "poster"
	KindThumbnail Kind = "thumbnail"
	KindWallpaper Kind = "wallpaper"
)

const mediaSubdir = "nmj_database/media/video"

// Downloader fetches artwork files referenced by provider metadata. Paths
// returned are relative to the scan root so the database stays portable
// across mount points.
type Downloader struct {
	root       string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDownloader creates a Downloader rooted at the scan directory.
func NewDownloader(root string, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Downloader{
		root:       root,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// SetHTTPClient overrides the default HTTP client.
func (d *Downloader) SetHTTPClient(client *http.Client) {
	if client != nil {
		d.httpClient = client
	}
}

// Download fetches the image at rawURL and stores it under the media tree.
// It returns the stored path relative to the scan root. A failed download
// returns an empty path alongside the error so the caller can leave the
// database field blank and retry on a later run.
func (d *Downloader) Download(ctx context.Context, rawURL string, kind Kind) (string, error) {
	if rawURL == "" {
		return "", errors.New("empty image url")
	}

	relPath := path.Join(mediaSubdir, kind.directory(), kind.filename(rawURL))
	target := filepath.Join(d.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch image %s: unexpected status %s", rawURL, resp.Status)
	}

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(target)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}

	d.logger.Debug("image stored", "url", rawURL, "path", relPath)
	return relPath, nil
}

// Remove deletes a stored image by its database-relative path. Missing files
// are not an error; cleanup stays best effort.
func (d *Downloader) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	target := filepath.Join(d.root, filepath.FromSlash(relPath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image %s: %w", relPath, err)
	}
	return nil
}

// directory returns the subdirectory for the artwork role. Wallpapers share
// the poster directory, matching the on-device layout.
func (k Kind) directory() string {
	if k == KindThumbnail {
		return "thumbnail"
	}
	return "poster"
}

// filename derives a stored name from the source URL basename, prefixed with
// the artwork role. URLs without a usable basename get a random name.
func (k Kind) filename(rawURL string) string {
	base := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		base = path.Base(parsed.Path)
	}
	base = strings.TrimLeft(base, "/.")
	if base == "" {
		base = uuid.NewString() + ".jpg"
	}
	return string(k) + "_" + base
}
