package images_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nmjcat/internal/images"
)

func newServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte("jpeg bytes"))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownloadStoresUnderMediaTree(t *testing.T) {
	root := t.TempDir()
	server := newServer(t, http.StatusOK)
	downloader := images.NewDownloader(root, nil)

	rel, err := downloader.Download(context.Background(), server.URL+"/avatar.jpg", images.KindPoster)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if rel != "nmj_database/media/video/poster/poster_avatar.jpg" {
		t.Errorf("stored path = %q", rel)
	}
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestDownloadKindsPickDirectories(t *testing.T) {
	root := t.TempDir()
	server := newServer(t, http.StatusOK)
	downloader := images.NewDownloader(root, nil)
	ctx := context.Background()

	thumb, err := downloader.Download(ctx, server.URL+"/a.jpg", images.KindThumbnail)
	if err != nil {
		t.Fatalf("thumbnail download: %v", err)
	}
	if !strings.Contains(thumb, "/thumbnail/thumbnail_") {
		t.Errorf("thumbnail path = %q", thumb)
	}

	wall, err := downloader.Download(ctx, server.URL+"/a.jpg", images.KindWallpaper)
	if err != nil {
		t.Fatalf("wallpaper download: %v", err)
	}
	if !strings.Contains(wall, "/poster/wallpaper_") {
		t.Errorf("wallpaper path = %q, want wallpaper prefix in poster dir", wall)
	}
}

func TestDownloadFailureLeavesNoPath(t *testing.T) {
	root := t.TempDir()
	server := newServer(t, http.StatusNotFound)
	downloader := images.NewDownloader(root, nil)

	rel, err := downloader.Download(context.Background(), server.URL+"/missing.jpg", images.KindPoster)
	if err == nil {
		t.Fatal("download of 404 succeeded")
	}
	if rel != "" {
		t.Errorf("failed download returned path %q, want empty", rel)
	}
}

func TestRemoveIsBestEffort(t *testing.T) {
	root := t.TempDir()
	server := newServer(t, http.StatusOK)
	downloader := images.NewDownloader(root, nil)

	rel, err := downloader.Download(context.Background(), server.URL+"/gone.jpg", images.KindPoster)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if err := downloader.Remove(rel); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove")
	}
	if err := downloader.Remove(rel); err != nil {
		t.Errorf("second Remove errored: %v", err)
	}
	if err := downloader.Remove("never/was/there.jpg"); err != nil {
		t.Errorf("Remove of missing path errored: %v", err)
	}
}
