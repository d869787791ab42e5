// Package syncer decides when local state is pushed to the remote snapshot
// store and how a remote snapshot is reconciled into the local store at
// session start.
package syncer

import (
	"sync"
	"time"

	"github.com/focusflow/focusflow/internal/snapshot"
)

// Domain identifies an independently synced collection set. Domains never
// wait for each other.
type Domain string

const (
	DomainTasks Domain = "tasks"
	DomainVault Domain = "vault"
)

// Debouncer coalesces a burst of mutations into one delayed push of the
// final state. It owns one cancellable timer per (account, domain); a new
// Schedule for the same pair cancels and restarts the pending timer, so
// intermediate states are never transmitted.
type Debouncer struct {
	mu      sync.Mutex
	windows map[Domain]time.Duration
	timers  map[string]*time.Timer
	tokens  map[string]uint64
	gates   map[string]*gate
	seq     uint64

	push func(accountID string, domain Domain, partial *snapshot.Snapshot)
}

// gate serializes pushes for one (account, domain) key. refs counts the
// fires that hold it; the map entry is dropped when the last one releases.
type gate struct {
	mu   sync.Mutex
	refs int
}

// NewDebouncer creates a Debouncer with per-domain windows. push is invoked
// with the scheduled state once a timer fires uncontested.
func NewDebouncer(windows map[Domain]time.Duration, push func(accountID string, domain Domain, partial *snapshot.Snapshot)) *Debouncer {
	return &Debouncer{
		windows: windows,
		timers:  make(map[string]*time.Timer),
		tokens:  make(map[string]uint64),
		gates:   make(map[string]*gate),
		push:    push,
	}
}

func key(accountID string, domain Domain) string {
	return accountID + "|" + string(domain)
}

// Schedule (re)starts the debounce timer for (accountID, domain) with the
// latest full state. Only the state passed to the most recent Schedule call
// is ever pushed.
func (d *Debouncer) Schedule(accountID string, domain Domain, partial *snapshot.Snapshot) {
	k := key(accountID, domain)

	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[k]; ok {
		t.Stop()
	}

	d.seq++
	token := d.seq
	d.tokens[k] = token

	d.timers[k] = time.AfterFunc(d.windows[domain], func() {
		d.fire(k, token, accountID, domain, partial)
	})
}

// fire runs in the timer goroutine. The token check drops fires that were
// superseded or cancelled between expiry and execution; the per-key gate
// serializes pushes so a fresh push never races a stale one.
func (d *Debouncer) fire(k string, token uint64, accountID string, domain Domain, partial *snapshot.Snapshot) {
	d.mu.Lock()
	if d.tokens[k] != token {
		d.mu.Unlock()
		return
	}
	delete(d.tokens, k)
	delete(d.timers, k)
	g, ok := d.gates[k]
	if !ok {
		g = &gate{}
		d.gates[k] = g
	}
	g.refs++
	d.mu.Unlock()

	g.mu.Lock()
	d.push(accountID, domain, partial)
	g.mu.Unlock()

	d.mu.Lock()
	g.refs--
	if g.refs == 0 && d.gates[k] == g {
		delete(d.gates, k)
	}
	d.mu.Unlock()
}

// CancelAll abandons every pending push. State scheduled but not yet fired
// is lost; that is the documented teardown behavior.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for k, t := range d.timers {
		t.Stop()
		delete(d.timers, k)
		delete(d.tokens, k)
	}
}
