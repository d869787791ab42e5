package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/focusflow/focusflow/internal/common"
	"github.com/focusflow/focusflow/internal/models"
	"github.com/focusflow/focusflow/internal/services"
)

// getSimpleText and getPasscode are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPasscode = GetPasscode

// Login prompts for an email and display name and starts a session for that
// account. A previously synced account comes back with its working set; a new
// email starts empty. The remote being unreachable is not fatal.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}

	user := &models.User{Email: email}
	if existing, err := a.repos.Users.Get(ctx, email); err == nil {
		user = existing
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	if user.Name == "" {
		name, err := getSimpleText(a.reader, "Enter display name", a.out)
		if err != nil {
			return err
		}
		if name == "" {
			name = email
		}
		user.Name = name
	}

	if err := a.session.OnLogin(ctx, user); err != nil {
		return err
	}

	a.vault.Lock()
	a.activeProject = services.ProjectAll
	fmt.Fprintf(a.out, "Logged in as %s (%d tasks)\n", user.Email, len(a.session.Tasks()))
	return nil
}

// Logout flushes nothing and deletes nothing: pending pushes are cancelled,
// the in-memory working set is dropped, and the local store stays intact for
// the next login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.OnLogout(ctx); err != nil {
		return err
	}
	a.vault.Lock()
	a.lastListing = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
