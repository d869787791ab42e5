package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/focusflow/focusflow/internal/common"
)

// FileStore keeps one JSON file per account under a directory. It simulates
// the cloud backend for development and tests.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. The directory is created
// on first push.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// path maps an account ID (an email) to a safe filename.
func (s *FileStore) path(accountID string) string {
	return filepath.Join(s.dir, url.PathEscape(accountID)+".json")
}

func (s *FileStore) Push(ctx context.Context, accountID string, partial *Snapshot) error {
	stored, err := s.Pull(ctx, accountID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}

	merged := merge(stored, partial)

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o770); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	if err := os.WriteFile(s.path(accountID), data, 0o660); err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	return nil
}

func (s *FileStore) Pull(ctx context.Context, accountID string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(accountID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}

	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
