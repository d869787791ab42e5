package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/focusflow/focusflow/internal/models"
)

// AddTask captures a task from the raw command line text.
func (a *App) AddTask(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		fmt.Fprintln(a.out, "Usage: add <text>")
		return nil
	}

	task, err := a.tasks.Add(ctx, text, a.activeProject)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %q to %s", task.Title, projectName(task.ProjectID))
	if task.DueDate != nil {
		fmt.Fprintf(a.out, ", due %s", task.DueDate.Local().Format("Mon Jan 2 15:04"))
	}
	fmt.Fprintln(a.out)
	return nil
}

// ListTasks prints the working set for the active project, numbered so later
// commands can refer to tasks by position.
func (a *App) ListTasks(ctx context.Context, query string) error {
	list := a.tasks.List(ctx, a.activeProject, query)

	a.lastListing = a.lastListing[:0]
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No tasks.")
		return nil
	}

	for i, t := range list {
		a.lastListing = append(a.lastListing, t.ID)
		fmt.Fprintf(a.out, "%3d. %s %s", i+1, checkbox(t.Completed), t.Title)
		if t.Priority == models.PriorityHigh {
			fmt.Fprint(a.out, " !")
		}
		if t.DueDate != nil {
			fmt.Fprintf(a.out, " (due %s)", t.DueDate.Local().Format("Jan 2"))
		}
		if len(t.Tags) > 0 {
			fmt.Fprintf(a.out, " #%s", strings.Join(t.Tags, " #"))
		}
		fmt.Fprintln(a.out)

		for _, st := range t.SubTasks {
			fmt.Fprintf(a.out, "       %s %s\n", checkbox(st.Completed), st.Title)
		}
	}
	return nil
}

// ToggleTask flips completion for the task at the given listing number.
func (a *App) ToggleTask(ctx context.Context, args []string) error {
	id, err := a.resolveTask(args, "done")
	if err != nil || id == "" {
		return err
	}

	task, err := a.tasks.Toggle(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s\n", checkbox(task.Completed), task.Title)
	return nil
}

// DeleteTask removes the task at the given listing number.
func (a *App) DeleteTask(ctx context.Context, args []string) error {
	id, err := a.resolveTask(args, "rm")
	if err != nil || id == "" {
		return err
	}

	if err := a.tasks.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// ExpandTask asks for suggested subtasks for the task at the given number.
func (a *App) ExpandTask(ctx context.Context, args []string) error {
	id, err := a.resolveTask(args, "sub")
	if err != nil || id == "" {
		return err
	}

	task, err := a.tasks.ExpandSubtasks(ctx, id)
	if err != nil {
		return err
	}
	if len(task.SubTasks) == 0 {
		fmt.Fprintln(a.out, "No suggestions.")
		return nil
	}
	for _, st := range task.SubTasks {
		fmt.Fprintf(a.out, "  %s %s\n", checkbox(st.Completed), st.Title)
	}
	return nil
}

// ListProjects prints the built-in projects with task counts.
func (a *App) ListProjects() {
	tasks := a.session.Tasks()
	counts := map[string]int{}
	for _, t := range tasks {
		counts[t.ProjectID]++
	}

	fmt.Fprintf(a.out, "  all (%d)\n", len(tasks))
	for _, p := range models.DefaultProjects {
		marker := " "
		if p.ID == a.activeProject {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s %s (%d)\n", marker, p.Icon, p.ID, counts[p.ID])
	}
}

// SwitchProject sets the active project filter.
func (a *App) SwitchProject(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: project <id|all>")
		return nil
	}
	a.activeProject = strings.ToLower(args[0])
	a.lastListing = nil
	return nil
}

// resolveTask maps a 1-based listing number to a task id. An out-of-range or
// missing number prints usage and returns an empty id with no error.
func (a *App) resolveTask(args []string, cmd string) (string, error) {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Usage: %s <n> (run 'list' first)\n", cmd)
		return "", nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.New("expected a task number from the last listing")
	}
	if n < 1 || n > len(a.lastListing) {
		return "", fmt.Errorf("no task %d in the last listing", n)
	}
	return a.lastListing[n-1], nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
