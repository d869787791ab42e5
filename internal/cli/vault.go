package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/focusflow/focusflow/internal/services"
)

// Vault dispatches the vault subcommands. Every item operation goes through
// the vault service, which enforces the lock.
func (a *App) Vault(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: vault setpass|unlock|lock|add <file>|list|rm <n>")
		return nil
	}

	switch args[0] {
	case "setpass":
		return a.vaultSetPasscode(ctx)
	case "unlock":
		return a.vaultUnlock(ctx)
	case "lock":
		a.vault.Lock()
		fmt.Fprintln(a.out, "Vault locked.")
		return nil
	case "add":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: vault add <file>")
			return nil
		}
		return a.vaultAdd(ctx, args[1])
	case "list":
		return a.vaultList(ctx)
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: vault rm <n>")
			return nil
		}
		return a.vaultRemove(ctx, args[1])
	default:
		fmt.Fprintln(a.out, "Unknown vault command:", args[0])
		return nil
	}
}

func (a *App) vaultSetPasscode(ctx context.Context) error {
	code, err := getPasscode("Enter new passcode (digits only, min 4)", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPasscode("Confirm passcode", a.out)
	if err != nil {
		return err
	}
	if code != confirm {
		return fmt.Errorf("passcodes do not match")
	}
	if err := a.vault.SetPasscode(ctx, code); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Passcode set. Vault unlocked.")
	return nil
}

func (a *App) vaultUnlock(ctx context.Context) error {
	has, err := a.vault.HasPasscode(ctx)
	if err != nil {
		return err
	}
	if !has {
		fmt.Fprintln(a.out, "No passcode set yet; use 'vault setpass'.")
		return nil
	}

	code, err := getPasscode("Enter passcode", a.out)
	if err != nil {
		return err
	}
	if err := a.vault.Unlock(ctx, code); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Vault unlocked.")
	return nil
}

func (a *App) vaultAdd(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := filepath.Base(path)
	item, err := a.vault.Add(ctx, name, services.DetectMediaType(name), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Stored %s (%s, %d bytes)\n", item.Name, item.Type, len(item.Data))
	return nil
}

func (a *App) vaultList(ctx context.Context) error {
	items, err := a.vault.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Vault is empty.")
		return nil
	}
	for i, item := range items {
		fmt.Fprintf(a.out, "%3d. %-7s %s (%d bytes)\n", i+1, item.Type, item.Name, len(item.Data))
	}
	return nil
}

func (a *App) vaultRemove(ctx context.Context, arg string) error {
	items, err := a.vault.List(ctx)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		return fmt.Errorf("no vault item %s in the last listing", arg)
	}
	if err := a.vault.Remove(ctx, items[n-1].ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed.")
	return nil
}
