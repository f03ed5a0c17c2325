package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/neurodata/edfstore/internal/logging"
)

// Ingest runs one upload through the full pipeline: validate, stage,
// decode, project, persist. The staged file is released on every exit
// path. On success the result reports the channel list and the exact
// number of rows now in the store.
func (s *Service) Ingest(ctx context.Context, fileName string, data []byte) (*IngestResult, error) {
	start := time.Now()

	if err := s.validateUpload(fileName, int64(len(data))); err != nil {
		return nil, err
	}

	logger := logging.WithFields(ctx,
		"ingest_id", uuid.New().String(),
		"file", fileName,
	)
	logger.Info("ingestion started", "bytes", len(data))

	handle, err := s.staging.Stage(data)
	if err != nil {
		return nil, err
	}
	defer s.staging.Release(handle)

	rec, err := decodeRecording(handle)
	if err != nil {
		logger.Warn("decode failed", "error", err)
		return nil, err
	}

	rows := Project(rec)

	count, err := s.replaceAll(ctx, rows)
	if err != nil {
		logger.Error("persist failed", "error", err)
		return nil, err
	}

	result := &IngestResult{
		FileName:     fileName,
		Channels:     rec.Channels,
		TotalRecords: count,
		Duration:     time.Since(start),
	}

	logger.Info("ingestion completed",
		"channels", len(result.Channels),
		"records", result.TotalRecords,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// validateUpload fails fast on bad uploads before any staging occurs.
func (s *Service) validateUpload(fileName string, size int64) error {
	ext := filepath.Ext(fileName)
	if !s.cfg.Upload.AllowsExtension(ext) {
		return validationError(
			fmt.Sprintf("only %v files are allowed", s.cfg.Upload.AllowedExtensions),
			ErrBadExtension,
		)
	}
	if size > s.cfg.Upload.MaxFileSize {
		return validationError(
			fmt.Sprintf("file exceeds maximum size of %d bytes", s.cfg.Upload.MaxFileSize),
			ErrFileTooLarge,
		)
	}
	return nil
}
