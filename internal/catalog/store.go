package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists a catalog in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("catalog database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
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

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save replaces the stored catalog with c in a single transaction.
func (s *Store) Save(ctx context.Context, c *Catalog) error {
	if c == nil {
		return errors.New("catalog is nil")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM series"); err != nil {
		return fmt.Errorf("clear series: %w", err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	for position, series := range c.Series() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO series (position, slug, title, site_id, updated_at) VALUES (?, ?, ?, ?, ?)`,
			position, series.Slug(), series.Title, nullableString(series.ID), timestamp,
		); err != nil {
			return fmt.Errorf("insert series %q: %w", series.Title, err)
		}
		for _, ep := range series.Episodes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO episodes (
                    series_position, number, episode_id, title, caption_url, stream_url
                ) VALUES (?, ?, ?, ?, ?, ?)`,
				position, ep.Number, ep.ID, ep.Title, ep.CaptionURL, nullableString(ep.StreamURL),
			); err != nil {
				return fmt.Errorf("insert episode %d of %q: %w", ep.Number, series.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load reads the stored catalog. An empty database yields an empty catalog.
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT position, title, site_id FROM series ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	type seriesRow struct {
		position int
		title    string
		id       sql.NullString
	}
	var heads []seriesRow
	for rows.Next() {
		var row seriesRow
		if err := rows.Scan(&row.position, &row.title, &row.id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan series: %w", err)
		}
		heads = append(heads, row)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate series: %w", err)
	}
	_ = rows.Close()

	series := make([]Series, 0, len(heads))
	for _, head := range heads {
		episodes, err := s.loadEpisodes(ctx, head.position)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", head.title, err)
		}
		built, err := NewSeries(head.title, head.id.String, episodes)
		if err != nil {
			return nil, err
		}
		series = append(series, built)
	}
	return New(series...)
}

// Counts returns the number of stored series and episodes.
func (s *Store) Counts(ctx context.Context) (int, int, error) {
	var seriesCount, episodeCount int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM series").Scan(&seriesCount); err != nil {
		return 0, 0, fmt.Errorf("count series: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM episodes").Scan(&episodeCount); err != nil {
		return 0, 0, fmt.Errorf("count episodes: %w", err)
	}
	return seriesCount, episodeCount, nil
}

func (s *Store) loadEpisodes(ctx context.Context, position int) ([]Episode, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number, episode_id, title, caption_url, stream_url
         FROM episodes WHERE series_position = ? ORDER BY number`,
		position,
	)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var (
			number     int
			id         string
			title      string
			captionURL string
			streamURL  sql.NullString
		)
		if err := rows.Scan(&number, &id, &title, &captionURL, &streamURL); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		ep, err := NewEpisode(number, id, title, captionURL, streamURL.String)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return episodes, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
