package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/focusflow/focusflow/internal/common"
	"github.com/focusflow/focusflow/internal/logging"
	"github.com/focusflow/focusflow/internal/models"
	"github.com/focusflow/focusflow/internal/repositories/tasks"
	"github.com/focusflow/focusflow/internal/repositories/vault"
	"github.com/focusflow/focusflow/internal/snapshot"
)

const pushTimeout = 30 * time.Second

// Coordinator owns the sync policy: a one-shot reconciliation per login per
// domain, and debounced full-state pushes on every mutation.
//
// Remote failures never block local functionality. A failed push is logged
// and dropped; a failed pull during reconciliation degrades to local-only.
type Coordinator struct {
	remote    snapshot.Store
	taskRepo  tasks.Repository
	vaultRepo vault.Repository
	log       logging.Logger
	debouncer *Debouncer
}

// Options tunes the per-domain debounce windows. The vault window is longer
// because its payloads are large media blobs.
type Options struct {
	TasksWindow time.Duration
	VaultWindow time.Duration
}

// DefaultOptions mirror the product tuning: tasks are pushed quickly for
// responsiveness, the vault lazily.
func DefaultOptions() Options {
	return Options{
		TasksWindow: 2 * time.Second,
		VaultWindow: 5 * time.Second,
	}
}

// NewCoordinator wires the coordinator to the remote store and the local
// repositories. A nil logger is replaced with a no-op one.
func NewCoordinator(remote snapshot.Store, taskRepo tasks.Repository, vaultRepo vault.Repository, log logging.Logger, opts Options) *Coordinator {
	if log == nil {
		log = logging.NopLogger{}
	}
	if opts.TasksWindow <= 0 {
		opts.TasksWindow = DefaultOptions().TasksWindow
	}
	if opts.VaultWindow <= 0 {
		opts.VaultWindow = DefaultOptions().VaultWindow
	}

	c := &Coordinator{
		remote:    remote,
		taskRepo:  taskRepo,
		vaultRepo: vaultRepo,
		log:       log,
	}
	c.debouncer = NewDebouncer(map[Domain]time.Duration{
		DomainTasks: opts.TasksWindow,
		DomainVault: opts.VaultWindow,
	}, c.push)
	return c
}

// pullRemote fetches the account snapshot, swallowing every failure:
// a missing snapshot and an unreachable remote both yield nil.
func (c *Coordinator) pullRemote(ctx context.Context, accountID string) *snapshot.Snapshot {
	snap, err := c.remote.Pull(ctx, accountID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			c.log.Warn(ctx, "snapshot pull failed, continuing local-only", "account", accountID, "error", err)
		}
		return nil
	}
	return snap
}

// ReconcileTasks runs the once-per-login decision for the tasks domain: the
// remote snapshot wins only when the local collection is empty, in which
// case its records are persisted locally so future operations stay
// local-first. Otherwise local state is used as-is and the remote copy is
// ignored for this session. Idempotent.
func (c *Coordinator) ReconcileTasks(ctx context.Context, accountID string) ([]models.Task, error) {
	var (
		remoteSnap *snapshot.Snapshot
		local      []models.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		remoteSnap = c.pullRemote(gctx, accountID)
		return nil
	})
	g.Go(func() error {
		var err error
		local, err = c.taskRepo.GetAll(gctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load local tasks: %w", err)
	}

	if len(local) == 0 && remoteSnap != nil && remoteSnap.Tasks != nil {
		if err := c.taskRepo.SaveAll(ctx, accountID, remoteSnap.Tasks); err != nil {
			return nil, fmt.Errorf("failed to adopt remote tasks: %w", err)
		}
		c.log.Info(ctx, "adopted remote snapshot", "account", accountID, "domain", DomainTasks, "records", len(remoteSnap.Tasks))
		return remoteSnap.Tasks, nil
	}

	return local, nil
}

// ReconcileVault is ReconcileTasks for the vault domain. The two domains
// reconcile independently and give no ordering guarantee to each other.
func (c *Coordinator) ReconcileVault(ctx context.Context, accountID string) ([]models.VaultItem, error) {
	var (
		remoteSnap *snapshot.Snapshot
		local      []models.VaultItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		remoteSnap = c.pullRemote(gctx, accountID)
		return nil
	})
	g.Go(func() error {
		var err error
		local, err = c.vaultRepo.GetAll(gctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load local vault: %w", err)
	}

	if len(local) == 0 && remoteSnap != nil && remoteSnap.Vault != nil {
		if err := c.vaultRepo.SaveAll(ctx, accountID, remoteSnap.Vault); err != nil {
			return nil, fmt.Errorf("failed to adopt remote vault items: %w", err)
		}
		c.log.Info(ctx, "adopted remote snapshot", "account", accountID, "domain", DomainVault, "records", len(remoteSnap.Vault))
		return remoteSnap.Vault, nil
	}

	return local, nil
}

// TasksChanged schedules a debounced push of the entire current task
// working set. Call it on every mutation.
func (c *Coordinator) TasksChanged(accountID string, working []models.Task) {
	if working == nil {
		working = []models.Task{}
	}
	c.debouncer.Schedule(accountID, DomainTasks, &snapshot.Snapshot{Tasks: working})
}

// VaultChanged schedules a debounced push of the entire current vault
// working set.
func (c *Coordinator) VaultChanged(accountID string, working []models.VaultItem) {
	if working == nil {
		working = []models.VaultItem{}
	}
	c.debouncer.Schedule(accountID, DomainVault, &snapshot.Snapshot{Vault: working})
}

// CancelPending abandons all scheduled pushes. Called on logout and app
// teardown.
func (c *Coordinator) CancelPending() {
	c.debouncer.CancelAll()
}

// push runs in the debounce timer goroutine once a window elapses
// uncontested. Failures are dropped: local-first, cloud-best-effort.
func (c *Coordinator) push(accountID string, domain Domain, partial *snapshot.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := c.remote.Push(ctx, accountID, partial); err != nil {
		c.log.Warn(ctx, "snapshot push failed, dropped", "account", accountID, "domain", domain, "error", err)
		return
	}
	c.log.Debug(ctx, "snapshot pushed", "account", accountID, "domain", domain)
}
