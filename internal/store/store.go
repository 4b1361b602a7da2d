package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// TimeFormat is the timestamp layout the jukebox schema expects.
const TimeFormat = "2006-01-02 15:04:05"

const schemaVersion = "2.0.0"

// Store is the embedded catalog database rooted under the scan directory.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open connects to the catalog database under root (nmj_database/media.db),
// creating and seeding it on first use. deviceName labels the root scan
// directory row.
func Open(root, deviceName string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbDir := filepath.Join(root, "nmj_database")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure database directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, "media.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: dbPath, logger: logger}
	if err := s.initSchema(context.Background(), deviceName); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the database file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context, deviceName string) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='DB_VERSION'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check DB_VERSION table: %w", err)
	}
	if tableExists != 0 {
		return nil
	}
	return s.createSchema(ctx, deviceName)
}

// createSchema creates every table, the secondary indexes, and the one-time
// seed rows: schema version, root scan-directory descriptor, scan-status
// markers, and the 27 shelf groups.
func (s *Store) createSchema(ctx context.Context, deviceName string) error {
	s.logger.Info("creating catalog database", "path", s.path)
	for _, table := range AllTables {
		if err := s.CreateTable(ctx, table); err != nil {
			return err
		}
	}
	for _, index := range indexes {
		if _, err := s.db.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	now := time.Now().Format(TimeFormat)
	seeds := []struct {
		table  *Table
		values Values
	}{
		{DBVersion, Values{"version": schemaVersion}},
		{ScanDirs, Values{"directory": "", "name": deviceName, "scan_time": "", "size": 1807172, "category": 3, "status": "3"}},
		{ScanSystem, Values{"type": "RUNNING_STATUS", "value": "0"}},
		{ScanSystem, Values{"type": "HISTORY_SCAN_VIDEOS", "value": now, "custom1": "1", "custom2": "89", "custom3": "0"}},
	}
	for _, seed := range seeds {
		if _, err := s.Insert(ctx, seed.table, seed.values); err != nil {
			return err
		}
	}

	for _, group := range shelfGroups() {
		if _, err := s.Insert(ctx, ShowGroups, Values{"name": group, "language": "EN"}); err != nil {
			return err
		}
	}

	s.logger.Info("catalog database created")
	return nil
}

// shelfGroups returns the alphabetic shelf bucket names: "0-9" then "A".."Z".
func shelfGroups() []string {
	groups := []string{"0-9"}
	for letter := 'A'; letter <= 'Z'; letter++ {
		groups = append(groups, string(letter))
	}
	return groups
}
