// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"nmjcat/internal/logging"
	"nmjcat/internal/store"
)

// MustOpenStore opens a store rooted in a fresh temp directory and registers
// cleanup. Returns the store and its scan root.
func MustOpenStore(t testing.TB) (*store.Store, string) {
	t.Helper()

	root := t.TempDir()
	st, err := store.Open(root, "local_directory", logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st, root
}

// WriteFile creates path with the given content, making parent directories
// as needed.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
