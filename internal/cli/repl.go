package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// loop is the interactive read-eval-print loop. It reads a line, takes the
// first token as the command, and dispatches. Handler errors are printed and
// the loop continues; it exits on EOF or "exit"/"quit".
func (a *App) loop(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(a.out, a.prompt())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(a.out, "Bye!")
			return
		}

		if err := a.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintln(a.out, "Error:", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	if !a.isLoggedIn() {
		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Available commands: login, exit")
			return nil
		case "login":
			return a.Login(ctx)
		default:
			fmt.Fprintln(a.out, "Unknown command (log in first):", cmd)
			return nil
		}
	}

	switch cmd {
	case "help":
		a.printHelp()
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "add":
		return a.AddTask(ctx, strings.Join(args, " "))
	case "l", "list":
		return a.ListTasks(ctx, "")
	case "search":
		return a.ListTasks(ctx, strings.Join(args, " "))
	case "done":
		return a.ToggleTask(ctx, args)
	case "rm":
		return a.DeleteTask(ctx, args)
	case "sub":
		return a.ExpandTask(ctx, args)
	case "projects":
		a.ListProjects()
	case "project":
		return a.SwitchProject(args)
	case "vault":
		return a.Vault(ctx, args)
	case "theme":
		return a.Theme(ctx, args)
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
	return nil
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Tasks:    add <text>, (l)ist, search <query>, done <n>, rm <n>, sub <n>")
	fmt.Fprintln(a.out, "Projects: projects, project <id|all>")
	fmt.Fprintln(a.out, "Vault:    vault setpass|unlock|lock|add <file>|list|rm <n>")
	fmt.Fprintln(a.out, "Other:    theme [light|dark], logout, exit")
}
