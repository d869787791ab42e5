package syncer

import (
	"sync"
	"testing"
	"time"

	"github.com/focusflow/focusflow/internal/models"
	"github.com/focusflow/focusflow/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pushRecorder struct {
	mu    sync.Mutex
	calls []*snapshot.Snapshot
}

func (r *pushRecorder) record(accountID string, domain Domain, partial *snapshot.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, partial)
}

func (r *pushRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func testWindows() map[Domain]time.Duration {
	return map[Domain]time.Duration{
		DomainTasks: 20 * time.Millisecond,
		DomainVault: 20 * time.Millisecond,
	}
}

func TestDebouncer_RestartCancelsPrevious(t *testing.T) {
	rec := &pushRecorder{}
	d := NewDebouncer(testWindows(), rec.record)

	for i := 0; i < 5; i++ {
		d.Schedule("a@b.com", DomainTasks, &snapshot.Snapshot{Tasks: []models.Task{{ID: "1"}}})
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 2*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestDebouncer_DomainsFireIndependently(t *testing.T) {
	rec := &pushRecorder{}
	d := NewDebouncer(testWindows(), rec.record)

	d.Schedule("a@b.com", DomainTasks, &snapshot.Snapshot{Tasks: []models.Task{}})
	d.Schedule("a@b.com", DomainVault, &snapshot.Snapshot{Vault: []models.VaultItem{}})

	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 2*time.Millisecond)
}

func TestDebouncer_AccountsDoNotShareTimers(t *testing.T) {
	rec := &pushRecorder{}
	d := NewDebouncer(testWindows(), rec.record)

	d.Schedule("x@example.com", DomainTasks, &snapshot.Snapshot{Tasks: []models.Task{{ID: "x"}}})
	d.Schedule("y@example.com", DomainTasks, &snapshot.Snapshot{Tasks: []models.Task{{ID: "y"}}})

	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 2*time.Millisecond)
}

func TestDebouncer_NoStateRetainedAfterPush(t *testing.T) {
	rec := &pushRecorder{}
	d := NewDebouncer(testWindows(), rec.record)

	d.Schedule("x@example.com", DomainTasks, &snapshot.Snapshot{Tasks: []models.Task{{ID: "x"}}})
	d.Schedule("y@example.com", DomainVault, &snapshot.Snapshot{Vault: []models.VaultItem{{ID: "v"}}})

	require.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 2*time.Millisecond)

	// timers, tokens and gates are all keyed per (account, domain);
	// none of them may outlive the push they served
	require.Eventually(t, func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return len(d.timers) == 0 && len(d.tokens) == 0 && len(d.gates) == 0
	}, time.Second, 2*time.Millisecond)
}

func TestDebouncer_CancelAllIsSilent(t *testing.T) {
	rec := &pushRecorder{}
	d := NewDebouncer(testWindows(), rec.record)

	d.Schedule("a@b.com", DomainTasks, &snapshot.Snapshot{Tasks: []models.Task{{ID: "1"}}})
	d.Schedule("a@b.com", DomainVault, &snapshot.Snapshot{Vault: []models.VaultItem{{ID: "v"}}})
	d.CancelAll()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, rec.count())

	d.mu.Lock()
	defer d.mu.Unlock()
	assert.Empty(t, d.timers)
	assert.Empty(t, d.tokens)
	assert.Empty(t, d.gates)
}
