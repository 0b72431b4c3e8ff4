// Package store persists extraction results to a local SQLite database so
// repeated runs over the same corpus can be inspected with ordinary SQL
// tooling. The store is optional and advisory: a failed write is logged and
// never alters the in-memory result set.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"idextract/internal/entity"
)

// Store wraps a SQLite database holding one row per processed image.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the database at dbPath and ensures the
// records table exists.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS records (
		image_id   TEXT PRIMARY KEY,
		id_type    TEXT,
		dl_number  TEXT,
		expiry     TEXT,
		name       TEXT,
		dob        TEXT,
		address    TEXT,
		sex        TEXT,
		height     TEXT,
		weight     TEXT,
		hair       TEXT,
		eyes       TEXT,
		altered    INTEGER,
		bbox_x     INTEGER,
		bbox_y     INTEGER,
		bbox_w     INTEGER,
		bbox_h     INTEGER,
		updated_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_records_id_type ON records(id_type);`

	if _, err := db.Exec(createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// UpsertRecord inserts or replaces the row for imageID.
func (s *Store) UpsertRecord(imageID string, rec entity.IdentityRecord) error {
	var x, y, w, h any
	if rec.FaceBBox != nil {
		x, y, w, h = rec.FaceBBox.X, rec.FaceBBox.Y, rec.FaceBBox.W, rec.FaceBBox.H
	}
	altered := 0
	if rec.Altered {
		altered = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO records (
			image_id, id_type, dl_number, expiry, name, dob, address,
			sex, height, weight, hair, eyes, altered,
			bbox_x, bbox_y, bbox_w, bbox_h, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(image_id) DO UPDATE SET
			id_type=excluded.id_type, dl_number=excluded.dl_number,
			expiry=excluded.expiry, name=excluded.name, dob=excluded.dob,
			address=excluded.address, sex=excluded.sex, height=excluded.height,
			weight=excluded.weight, hair=excluded.hair, eyes=excluded.eyes,
			altered=excluded.altered,
			bbox_x=excluded.bbox_x, bbox_y=excluded.bbox_y,
			bbox_w=excluded.bbox_w, bbox_h=excluded.bbox_h,
			updated_at=excluded.updated_at`,
		imageID, rec.IDType, rec.DLNumber, rec.Expiry, rec.Name, rec.DOB,
		rec.Address, rec.Sex, rec.Height, rec.Weight, rec.Hair, rec.Eyes,
		altered, x, y, w, h, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// SaveAll upserts every record in set; individual failures are logged and
// skipped so one bad row cannot abort the batch.
func (s *Store) SaveAll(set map[string]entity.IdentityRecord) {
	for id, rec := range set {
		if err := s.UpsertRecord(id, rec); err != nil {
			s.logger.Warn("store.upsert_failed", "image_id", id, "error", err)
		}
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
