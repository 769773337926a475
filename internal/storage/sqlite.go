// Package storage persists places discovered at runtime so remote lookups
// survive restarts and can seed future gazetteer snapshots.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/worldjourney/platoo/internal/models"
	"github.com/worldjourney/platoo/internal/placeid"
)

// PlaceStore persists gazetteer entries in SQLite.
type PlaceStore struct {
	db *sql.DB
}

// NewPlaceStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewPlaceStore(dbPath string) (*PlaceStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &PlaceStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS places (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		aliases TEXT,
		grp TEXT,
		popularity REAL NOT NULL DEFAULT 0,
		province TEXT,
		district TEXT,
		category TEXT,
		detail TEXT,
		thumbnail TEXT,
		attractions TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_places_province ON places(province);
	CREATE INDEX IF NOT EXISTS idx_places_popularity ON places(popularity);
	`
	_, err := db.Exec(schema)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Upsert inserts or replaces an entry. Entries arriving without an ID get a
// deterministic one derived from name and province.
func (s *PlaceStore) Upsert(ctx context.Context, e *models.GazetteerEntry) error {
	return upsert(ctx, s.db, e)
}

func upsert(ctx context.Context, db execer, e *models.GazetteerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = placeid.PlaceID(e.Name, e.Province)
	}
	aliasesJSON, err := json.Marshal(e.Aliases)
	if err != nil {
		return fmt.Errorf("failed to marshal aliases: %w", err)
	}
	attractionsJSON, err := json.Marshal(e.Attractions)
	if err != nil {
		return fmt.Errorf("failed to marshal attractions: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO places (id, name, aliases, grp, popularity, province, district, category, detail, thumbnail, attractions, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			aliases = excluded.aliases,
			grp = excluded.grp,
			popularity = excluded.popularity,
			province = excluded.province,
			district = excluded.district,
			category = excluded.category,
			detail = excluded.detail,
			thumbnail = excluded.thumbnail,
			attractions = excluded.attractions,
			updated_at = excluded.updated_at`,
		e.ID, e.Name, string(aliasesJSON), e.Group, e.Popularity, e.Province,
		e.District, e.Category, e.Detail, e.Thumbnail, string(attractionsJSON), time.Now(),
	)
	return err
}

// UpsertAll upserts entries in one transaction.
func (s *PlaceStore) UpsertAll(ctx context.Context, entries []*models.GazetteerEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, e := range entries {
		if err := upsert(ctx, tx, e); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Get returns an entry by ID.
func (s *PlaceStore) Get(ctx context.Context, id string) (*models.GazetteerEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, aliases, grp, popularity, province, district, category, detail, thumbnail, attractions
		 FROM places WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("place not found: %s", id)
	}
	return e, err
}

// List returns all entries ordered by descending popularity, then name.
func (s *PlaceStore) List(ctx context.Context) ([]*models.GazetteerEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, aliases, grp, popularity, province, district, category, detail, thumbnail, attractions
		 FROM places ORDER BY popularity DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.GazetteerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored places.
func (s *PlaceStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM places`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *PlaceStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.GazetteerEntry, error) {
	var (
		e                        models.GazetteerEntry
		aliasesJSON, attractions sql.NullString
		group                    sql.NullString
		province, district       sql.NullString
		category, detail         sql.NullString
		thumbnail                sql.NullString
	)
	err := row.Scan(&e.ID, &e.Name, &aliasesJSON, &group, &e.Popularity,
		&province, &district, &category, &detail, &thumbnail, &attractions)
	if err != nil {
		return nil, err
	}
	e.Group = group.String
	e.Province = province.String
	e.District = district.String
	e.Category = category.String
	e.Detail = detail.String
	e.Thumbnail = thumbnail.String
	if aliasesJSON.String != "" {
		if err := json.Unmarshal([]byte(aliasesJSON.String), &e.Aliases); err != nil {
			return nil, fmt.Errorf("failed to unmarshal aliases: %w", err)
		}
	}
	if attractions.String != "" {
		if err := json.Unmarshal([]byte(attractions.String), &e.Attractions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attractions: %w", err)
		}
	}
	return &e, nil
}
