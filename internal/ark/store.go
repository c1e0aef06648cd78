package ark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"shodan/internal/config"
	"shodan/internal/textutil"
)

// ErrSchemaMismatch indicates the database was migrated by a newer build.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const recordColumns = "id, title, creator, year, format, kind, weight, status, tags_json, notes"

// Store manages archive persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the archive database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("ark: config required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.ArkDatabasePath())
}

// OpenPath opens the archive database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Insert appends records in one transaction and returns them as stored.
// A record whose ID is empty or already taken receives the next free ID
// under its prefix.
func (s *Store) Insert(ctx context.Context, records ...Record) ([]Record, error) {
	if len(records) == 0 {
		return nil, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	stored := make([]Record, 0, len(records))
	for _, rec := range records {
		rec.Title = strings.TrimSpace(rec.Title)
		if rec.Title == "" {
			return nil, errors.New("record title must not be empty")
		}
		if rec.Status == "" {
			rec.Status = StatusArchived
		}
		taken, err := idTaken(ctx, tx, rec.ID)
		if err != nil {
			return nil, err
		}
		if rec.ID == "" || taken {
			if rec.ID, err = nextFreeID(ctx, tx, idPrefix(rec.ID)); err != nil {
				return nil, err
			}
		}
		tagsJSON, err := encodeTags(rec.Tags)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (
                id, title, title_key, creator, year, format, kind,
                weight, status, tags_json, notes, created_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID,
			rec.Title,
			textutil.CanonicalKey(rec.Title),
			nullableString(rec.Creator),
			nullableString(rec.Year),
			nullableString(rec.Format),
			nullableString(rec.Kind),
			rec.Weight,
			rec.Status,
			tagsJSON,
			nullableString(rec.Notes),
			timestamp,
		); err != nil {
			return nil, fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
		stored = append(stored, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert: %w", err)
	}
	return stored, nil
}

// List returns every record in insertion order.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return collectRecords(rows)
}

// FindByKey returns the records whose title shares title's canonical key.
func (s *Store) FindByKey(ctx context.Context, title string) ([]Record, error) {
	key := textutil.CanonicalKey(title)
	if key == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM records WHERE title_key = ? ORDER BY seq`, key)
	if err != nil {
		return nil, fmt.Errorf("find by key: %w", err)
	}
	return collectRecords(rows)
}

// Count returns the number of archived records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// Peers returns up to limit records, in insertion order, whose weight lies
// strictly within tolerance of weight.
func (s *Store) Peers(ctx context.Context, weight, tolerance float64, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE ABS(weight - ?) < ? ORDER BY seq LIMIT ?`,
		weight, tolerance, limit)
	if err != nil {
		return nil, fmt.Errorf("query peers: %w", err)
	}
	return collectRecords(rows)
}

// Clear removes every record and returns the number removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records`)
	if err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

// Ping verifies the database connection is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
