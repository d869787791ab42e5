// Package snapshot implements the remote snapshot store: one document per
// account holding the last pushed state of one or more collections.
//
// A push is a shallow merge at the top level of the document. Collections
// present in the pushed partial replace the stored ones wholesale; absent
// collections are preserved. Individual records are never merged.
package snapshot

import (
	"context"
	"time"

	"github.com/focusflow/focusflow/internal/models"
)

// Snapshot is the per-account remote document. A nil collection field means
// "absent": on push it leaves the stored collection untouched, on pull it
// means the snapshot never held that collection. Use an empty non-nil slice
// to push "this collection is now empty".
type Snapshot struct {
	Tasks      []models.Task      `json:"tasks"`
	Vault      []models.VaultItem `json:"vault"`
	LastSynced time.Time          `json:"lastSynced"`
}

// Store reads and writes account snapshots.
//
// Push failures are not retried here; the coordinator decides whether to
// surface or swallow them. Pull never returns a partial document.
type Store interface {
	// Push merges partial into the stored snapshot for accountID, stamps
	// LastSynced with the current time, and persists the whole document.
	Push(ctx context.Context, accountID string, partial *Snapshot) error

	// Pull returns the whole last-written snapshot for accountID, or
	// common.ErrNotFound if none was ever pushed.
	Pull(ctx context.Context, accountID string) (*Snapshot, error)
}

// now is a test seam for LastSynced stamping.
var now = time.Now

// merge overlays the non-nil collections of partial onto base and stamps
// LastSynced. base may be nil when no snapshot exists yet.
func merge(base, partial *Snapshot) *Snapshot {
	merged := &Snapshot{}
	if base != nil {
		*merged = *base
	}
	if partial.Tasks != nil {
		merged.Tasks = partial.Tasks
	}
	if partial.Vault != nil {
		merged.Vault = partial.Vault
	}
	merged.LastSynced = now().UTC()
	return merged
}
