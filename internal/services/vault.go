package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow/internal/common"
	"github.com/focusflow/focusflow/internal/logging"
	"github.com/focusflow/focusflow/internal/models"
	"github.com/focusflow/focusflow/internal/repositories/settings"
	"github.com/focusflow/focusflow/internal/repositories/vault"
	"github.com/focusflow/focusflow/internal/session"
)

// MinPasscodeLen is the minimum number of digits a vault passcode must have.
const MinPasscodeLen = 4

// VaultService gates the media vault behind a numeric passcode. The vault is
// locked on construction and after every Lock; all item operations require an
// unlocked vault. The passcode is stored per account as plain text, matching
// the vault records themselves which are not encrypted either.
type VaultService struct {
	session  *session.Session
	repo     vault.Repository
	settings settings.Repository
	log      logging.Logger

	mu       sync.Mutex
	unlocked bool
}

func NewVaultService(sess *session.Session, repo vault.Repository, set settings.Repository, log logging.Logger) *VaultService {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &VaultService{session: sess, repo: repo, settings: set, log: log}
}

// HasPasscode reports whether the current account has set a passcode yet.
func (s *VaultService) HasPasscode(ctx context.Context) (bool, error) {
	email, err := s.session.AccountID()
	if err != nil {
		return false, err
	}
	_, err = s.settings.Get(ctx, settings.PasscodeKey(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SetPasscode stores a new passcode for the current account and unlocks the
// vault. The code must be at least MinPasscodeLen digits.
func (s *VaultService) SetPasscode(ctx context.Context, code string) error {
	email, err := s.session.AccountID()
	if err != nil {
		return err
	}
	if err := validatePasscode(code); err != nil {
		return err
	}
	if err := s.settings.Set(ctx, settings.PasscodeKey(email), code); err != nil {
		return fmt.Errorf("failed to save passcode: %w", err)
	}

	s.mu.Lock()
	s.unlocked = true
	s.mu.Unlock()
	return nil
}

// Unlock compares the code against the stored passcode.
func (s *VaultService) Unlock(ctx context.Context, code string) error {
	email, err := s.session.AccountID()
	if err != nil {
		return err
	}
	stored, err := s.settings.Get(ctx, settings.PasscodeKey(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrPasscodeNotSet
		}
		return err
	}
	if code != stored {
		return common.ErrInvalidPasscode
	}

	s.mu.Lock()
	s.unlocked = true
	s.mu.Unlock()
	return nil
}

// Lock re-locks the vault. Stored items are untouched.
func (s *VaultService) Lock() {
	s.mu.Lock()
	s.unlocked = false
	s.mu.Unlock()
}

// Unlocked reports the current lock state.
func (s *VaultService) Unlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked
}

func (s *VaultService) requireUnlocked() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlocked {
		return common.ErrVaultLocked
	}
	return nil
}

// Add stores a new item in the vault.
func (s *VaultService) Add(ctx context.Context, name string, mediaType models.MediaType, data []byte) (*models.VaultItem, error) {
	if err := s.requireUnlocked(); err != nil {
		return nil, err
	}
	account, err := s.session.AccountID()
	if err != nil {
		return nil, err
	}

	item := &models.VaultItem{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      mediaType,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, account, item); err != nil {
		return nil, fmt.Errorf("failed to save vault item: %w", err)
	}
	s.session.PutVaultItem(*item)
	return item, nil
}

// List returns the vault working set, newest first.
func (s *VaultService) List(ctx context.Context) ([]models.VaultItem, error) {
	if err := s.requireUnlocked(); err != nil {
		return nil, err
	}

	items := s.session.VaultItems()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Remove deletes an item from the vault.
func (s *VaultService) Remove(ctx context.Context, id string) error {
	if err := s.requireUnlocked(); err != nil {
		return err
	}
	account, err := s.session.AccountID()
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, account, id); err != nil {
		return err
	}
	s.session.RemoveVaultItem(id)
	return nil
}

func validatePasscode(code string) error {
	if len(code) < MinPasscodeLen {
		return common.ErrPasscodeTooShort
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return common.ErrInvalidPasscode
		}
	}
	return nil
}

// DetectMediaType guesses the media type from a file name.
func DetectMediaType(name string) models.MediaType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4", ".mov", ".webm", ".mkv", ".avi":
		return models.MediaVideo
	default:
		return models.MediaImage
	}
}
