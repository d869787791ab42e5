// Package settings is a flat key-value store for app configuration that
// survives restarts: current user, last user, theme, per-account vault
// passcode. Values are plain strings.
package settings

import "context"

// Well-known keys. The vault passcode key is per-account; use PasscodeKey.
const (
	KeyCurrentUser = "current_user"
	KeyLastUser    = "last_user"
	KeyTheme       = "theme"
)

// PasscodeKey returns the settings key holding the vault passcode for the
// given account. The passcode is stored and compared as plain text.
func PasscodeKey(email string) string {
	return "vault_passcode_" + email
}

type Repository interface {
	// Get returns the value for key, or common.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error

	// Delete removes a key; absent keys are a no-op.
	Delete(ctx context.Context, key string) error
}
