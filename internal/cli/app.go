// Package cli implements the interactive FocusFlow terminal client: a small
// REPL over the session, the task and vault services, and the sync
// coordinator.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/focusflow/focusflow/internal/config"
	"github.com/focusflow/focusflow/internal/filex"
	"github.com/focusflow/focusflow/internal/logging"
	"github.com/focusflow/focusflow/internal/models"
	"github.com/focusflow/focusflow/internal/nlp"
	"github.com/focusflow/focusflow/internal/services"
	"github.com/focusflow/focusflow/internal/session"
	"github.com/focusflow/focusflow/internal/snapshot"
	"github.com/focusflow/focusflow/internal/storage"
	"github.com/focusflow/focusflow/internal/syncer"
)

// App is the CLI application. It owns the wiring from config to services and
// the interactive loop state.
type App struct {
	config  *config.Config
	log     logging.Logger
	repos   *storage.Repositories
	coord   *syncer.Coordinator
	session *session.Session
	tasks   *services.TaskService
	vault   *services.VaultService

	reader *bufio.Reader
	out    io.Writer

	// lastListing maps the 1-based numbers printed by the latest list
	// command to task ids, so done/rm/sub can take a number.
	lastListing []string
	// activeProject filters list output and is the default project for add.
	activeProject string
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	repos, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	remote, err := buildRemote(cfg)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	coord := syncer.NewCoordinator(remote, repos.Tasks, repos.Vault, log, syncer.Options{
		TasksWindow: cfg.TasksDebounce,
		VaultWindow: cfg.VaultDebounce,
	})
	sess := session.New(repos.Users, repos.Settings, coord, log)

	parser, suggester := buildNLP(cfg)
	taskSvc := services.NewTaskService(sess, repos.Tasks, parser, suggester, log)
	vaultSvc := services.NewVaultService(sess, repos.Vault, repos.Settings, log)

	return &App{
		config:        cfg,
		log:           log,
		repos:         repos,
		coord:         coord,
		session:       sess,
		tasks:         taskSvc,
		vault:         vaultSvc,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		activeProject: services.ProjectAll,
	}, nil
}

// buildRemote selects the snapshot backend from the config.
func buildRemote(cfg *config.Config) (snapshot.Store, error) {
	switch cfg.SnapshotBackend {
	case config.BackendS3:
		return snapshot.NewS3Store(snapshot.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}), nil
	case config.BackendFile:
		dir, err := filex.EnsureSubdDir(cfg.SnapshotDir)
		if err != nil {
			return nil, err
		}
		return snapshot.NewFileStore(dir), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}

// buildNLP picks the capture parser. With an API key the model parser handles
// both parsing and subtask suggestions; without one, parsing falls back to
// the local heuristics and suggestions are disabled.
func buildNLP(cfg *config.Config) (nlp.Parser, nlp.Suggester) {
	if cfg.AnthropicAPIKey != "" {
		mp := nlp.NewModelParser(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		return mp, mp
	}
	return nlp.NewLocalParser(), nil
}

// Run restores a previous session if one exists, then enters the REPL.
// It blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	restored, err := a.session.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	if restored {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", a.session.User().Name)
	}

	fmt.Fprintln(a.out, "FocusFlow CLI (type 'help' for commands)")
	a.loop(ctx)
}

// Close cancels pending pushes and releases the local store.
func (a *App) Close() {
	a.coord.CancelPending()
	_ = a.repos.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.User() != nil
}

func (a *App) prompt() string {
	u := a.session.User()
	if u == nil {
		return "focusflow > "
	}
	if a.activeProject != services.ProjectAll {
		return fmt.Sprintf("focusflow (%s/%s) > ", u.Email, a.activeProject)
	}
	return fmt.Sprintf("focusflow (%s) > ", u.Email)
}

func projectName(id string) string {
	for _, p := range models.DefaultProjects {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}
