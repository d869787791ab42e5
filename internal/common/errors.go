// Package common defines shared sentinel errors used across the FocusFlow
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Storage cannot be opened or written (quota, permissions, bad path).
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Remote snapshot read/write failed. The app degrades to local-only;
	// the coordinator swallows this at its boundary.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// Vault-specific errors.
	ErrVaultLocked      = errors.New("vault locked")
	ErrInvalidPasscode  = errors.New("invalid passcode")
	ErrPasscodeTooShort = errors.New("passcode too short")
	ErrPasscodeNotSet   = errors.New("passcode not set")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")
)
