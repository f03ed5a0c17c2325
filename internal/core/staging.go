package core

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StagingStore writes upload payloads to uniquely named temporary files so
// the codec can read them from disk. Handles are plain file paths.
//
// Every Stage call must be paired with exactly one Release, normally via
// defer, so no exit path leaks a staged artifact.
type StagingStore struct {
	dir string
}

// NewStagingStore creates a staging store rooted at dir. An empty dir
// means the operating system's temp directory.
func NewStagingStore(dir string) *StagingStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &StagingStore{dir: dir}
}

// Stage writes data to a fresh temporary file and returns its path.
// Names are minted per call, so concurrent stagings never collide.
func (s *StagingStore) Stage(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", stagingError("create staging dir", err)
	}

	path := filepath.Join(s.dir, "edf-upload-"+uuid.New().String()+".edf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", stagingError("stage upload", err)
	}

	return path, nil
}

// Release deletes the staged file. It is idempotent: releasing an
// already-released or missing handle is a no-op. Other deletion failures
// are logged and swallowed so they never mask the primary error.
func (s *StagingStore) Release(handle string) {
	if handle == "" {
		return
	}
	if err := os.Remove(handle); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to release staged file", "path", handle, "error", err)
	}
}
