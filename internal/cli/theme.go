package cli

import (
	"context"
	"fmt"
)

// Theme prints or switches the display theme, which is stored per device in
// the settings and survives logout.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Theme:", a.session.Theme(ctx))
		return nil
	}

	theme := args[0]
	if theme != "light" && theme != "dark" {
		fmt.Fprintln(a.out, "Usage: theme [light|dark]")
		return nil
	}
	if err := a.session.SetTheme(ctx, theme); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Theme set to", theme)
	return nil
}
