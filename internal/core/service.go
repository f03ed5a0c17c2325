package core

import (
	"context"
	"fmt"

	"github.com/neurodata/edfstore/internal/config"
)

// sampleTable is the single flat table holding the most recent recording.
const sampleTable = "edf_data_points"

// Service is the entry point for all ingestion and query operations.
type Service struct {
	db      Pool
	staging *StagingStore
	cfg     *config.Config
}

// NewService creates a service backed by db, staging uploads under the
// configured staging directory.
func NewService(db Pool, cfg *config.Config) *Service {
	return &Service{
		db:      db,
		staging: NewStagingStore(cfg.Upload.StagingDir),
		cfg:     cfg,
	}
}

// InitSchema creates the sample table and its channel index if they do
// not exist. Called once at startup.
func (s *Service) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + sampleTable + ` (
			id BIGSERIAL PRIMARY KEY,
			channel TEXT NOT NULL,
			time DOUBLE PRECISION NOT NULL,
			value DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + sampleTable + `_channel ON ` + sampleTable + ` (channel)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Ping verifies database connectivity.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// DatabaseVersion returns the backing store's version string.
func (s *Service) DatabaseVersion(ctx context.Context) (string, error) {
	var version string
	if err := s.db.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", persistenceError("query database version", err)
	}
	return version, nil
}

// ListSamples returns every persisted sample row in store order. With
// full-replace semantics the table never holds more than one recording,
// so there is no pagination.
func (s *Service) ListSamples(ctx context.Context) ([]SampleRecord, error) {
	rows, err := s.db.Query(ctx, "SELECT id, channel, time, value FROM "+sampleTable+" ORDER BY id")
	if err != nil {
		return nil, persistenceError("query samples", err)
	}
	defer rows.Close()

	records := make([]SampleRecord, 0)
	for rows.Next() {
		var r SampleRecord
		if err := rows.Scan(&r.ID, &r.Channel, &r.Time, &r.Value); err != nil {
			return nil, persistenceError("scan sample row", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate sample rows", err)
	}

	return records, nil
}

// CountSamples returns the number of persisted sample rows.
func (s *Service) CountSamples(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+sampleTable).Scan(&count); err != nil {
		return 0, persistenceError("count samples", err)
	}
	return count, nil
}
