// Package session binds an authenticated account to its store partitions and
// drives the sync coordinator across the login/logout lifecycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/focusflow/focusflow/internal/common"
	"github.com/focusflow/focusflow/internal/logging"
	"github.com/focusflow/focusflow/internal/models"
	"github.com/focusflow/focusflow/internal/repositories/settings"
	"github.com/focusflow/focusflow/internal/repositories/users"
	"github.com/focusflow/focusflow/internal/syncer"
)

// Session is the explicit session context object: it owns the signed-in
// user and the in-memory working sets for both domains. All state that used
// to be ambient (current account, theme cache) lives here with a defined
// init and teardown.
//
// Every working-set mutation schedules a debounced push through the
// coordinator. OnLogout clears memory only; persisted local and remote data
// survive for the next login.
type Session struct {
	userRepo     users.Repository
	settingsRepo settings.Repository
	coordinator  *syncer.Coordinator
	log          logging.Logger

	mu         sync.Mutex
	user       *models.User
	tasks      []models.Task
	vaultItems []models.VaultItem
}

// New constructs a Session. It holds no account until Restore or OnLogin.
func New(userRepo users.Repository, settingsRepo settings.Repository, coordinator *syncer.Coordinator, log logging.Logger) *Session {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Session{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		coordinator:  coordinator,
		log:          log,
	}
}

// Restore resumes the previously signed-in account at process start, if
// one was persisted. Returns false when nobody was signed in.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	email, err := s.settingsRepo.Get(ctx, settings.KeyCurrentUser)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read current user: %w", err)
	}

	user, err := s.userRepo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// stale pointer; treat as signed out
			return false, nil
		}
		return false, fmt.Errorf("failed to load user profile: %w", err)
	}

	return true, s.OnLogin(ctx, user)
}

// OnLogin binds the account and reconciles both domains independently.
// The account email selects the local partitions and the remote snapshot;
// switching accounts never mixes data.
func (s *Session) OnLogin(ctx context.Context, user *models.User) error {
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	if err := s.settingsRepo.Set(ctx, settings.KeyCurrentUser, user.Email); err != nil {
		return fmt.Errorf("failed to persist current user: %w", err)
	}
	if err := s.settingsRepo.Set(ctx, settings.KeyLastUser, user.Email); err != nil {
		return fmt.Errorf("failed to persist last user: %w", err)
	}

	tasks, err := s.coordinator.ReconcileTasks(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("task reconciliation failed: %w", err)
	}
	vaultItems, err := s.coordinator.ReconcileVault(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("vault reconciliation failed: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.tasks = tasks
	s.vaultItems = vaultItems
	s.mu.Unlock()

	s.log.Info(ctx, "session started", "account", user.Email, "tasks", len(tasks), "vault", len(vaultItems))
	return nil
}

// OnLogout cancels pending pushes and clears the in-memory working sets.
// No persisted data is deleted, so re-login restores it via reconciliation.
func (s *Session) OnLogout(ctx context.Context) error {
	s.coordinator.CancelPending()

	s.mu.Lock()
	account := ""
	if s.user != nil {
		account = s.user.Email
	}
	s.user = nil
	s.tasks = nil
	s.vaultItems = nil
	s.mu.Unlock()

	if err := s.settingsRepo.Delete(ctx, settings.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}

	s.log.Info(ctx, "session ended", "account", account)
	return nil
}

// User returns the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// AccountID returns the signed-in account email, or common.ErrNotLoggedIn.
func (s *Session) AccountID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return "", common.ErrNotLoggedIn
	}
	return s.user.Email, nil
}

// Tasks returns a copy of the task working set.
func (s *Session) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// VaultItems returns a copy of the vault working set.
func (s *Session) VaultItems() []models.VaultItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.VaultItem, len(s.vaultItems))
	copy(out, s.vaultItems)
	return out
}

// PutTask inserts or replaces a task in the working set by ID and schedules
// a push of the whole set.
func (s *Session) PutTask(task models.Task) {
	s.mu.Lock()
	replaced := false
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			replaced = true
			break
		}
	}
	if !replaced {
		s.tasks = append([]models.Task{task}, s.tasks...)
	}
	s.notifyTasksLocked()
	s.mu.Unlock()
}

// RemoveTask drops a task from the working set by ID and schedules a push.
func (s *Session) RemoveTask(id string) {
	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.notifyTasksLocked()
	s.mu.Unlock()
}

// PutVaultItem inserts or replaces a vault item by ID and schedules a push.
func (s *Session) PutVaultItem(item models.VaultItem) {
	s.mu.Lock()
	replaced := false
	for i := range s.vaultItems {
		if s.vaultItems[i].ID == item.ID {
			s.vaultItems[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.vaultItems = append([]models.VaultItem{item}, s.vaultItems...)
	}
	s.notifyVaultLocked()
	s.mu.Unlock()
}

// RemoveVaultItem drops a vault item by ID and schedules a push.
func (s *Session) RemoveVaultItem(id string) {
	s.mu.Lock()
	kept := s.vaultItems[:0]
	for _, v := range s.vaultItems {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	s.vaultItems = kept
	s.notifyVaultLocked()
	s.mu.Unlock()
}

// Theme returns the persisted theme, defaulting to "light".
func (s *Session) Theme(ctx context.Context) string {
	theme, err := s.settingsRepo.Get(ctx, settings.KeyTheme)
	if err != nil {
		return "light"
	}
	return theme
}

// SetTheme persists the theme choice.
func (s *Session) SetTheme(ctx context.Context, theme string) error {
	return s.settingsRepo.Set(ctx, settings.KeyTheme, theme)
}

func (s *Session) notifyTasksLocked() {
	if s.user == nil {
		return
	}
	working := make([]models.Task, len(s.tasks))
	copy(working, s.tasks)
	s.coordinator.TasksChanged(s.user.Email, working)
}

func (s *Session) notifyVaultLocked() {
	if s.user == nil {
		return
	}
	working := make([]models.VaultItem, len(s.vaultItems))
	copy(working, s.vaultItems)
	s.coordinator.VaultChanged(s.user.Email, working)
}
