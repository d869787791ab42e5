package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow/internal/common"
	"github.com/focusflow/focusflow/internal/models"
	"github.com/focusflow/focusflow/internal/nlp"
	"github.com/focusflow/focusflow/internal/repositories/settings"
	"github.com/focusflow/focusflow/internal/repositories/tasks"
	"github.com/focusflow/focusflow/internal/repositories/users"
	"github.com/focusflow/focusflow/internal/repositories/vault"
	"github.com/focusflow/focusflow/internal/session"
	"github.com/focusflow/focusflow/internal/snapshot"
	"github.com/focusflow/focusflow/internal/syncer"

	_ "modernc.org/sqlite"
)

const testAccount = "a@b.com"

type fixture struct {
	session  *session.Session
	taskRepo tasks.Repository
	vault    vault.Repository
	settings settings.Repository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE tasks (
  account    TEXT NOT NULL,
  id         TEXT NOT NULL,
  project_id TEXT NOT NULL DEFAULT '',
  completed  INTEGER NOT NULL DEFAULT 0,
  data       TEXT NOT NULL,
  PRIMARY KEY (account, id)
);
CREATE TABLE vault (
  account TEXT NOT NULL,
  id      TEXT NOT NULL,
  data    BLOB NOT NULL,
  PRIMARY KEY (account, id)
);
CREATE TABLE user (email TEXT PRIMARY KEY, data TEXT NOT NULL);
CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL);
`)
	require.NoError(t, err)

	taskRepo := tasks.NewSQLiteRepository(db)
	vaultRepo := vault.NewSQLiteRepository(db)
	userRepo := users.NewSQLiteRepository(db)
	settingsRepo := settings.NewSQLiteRepository(db)

	remote := snapshot.NewFileStore(t.TempDir())
	coord := syncer.NewCoordinator(remote, taskRepo, vaultRepo, nil, syncer.Options{
		TasksWindow: 20 * time.Millisecond,
		VaultWindow: 20 * time.Millisecond,
	})

	sess := session.New(userRepo, settingsRepo, coord, nil)
	require.NoError(t, sess.OnLogin(context.Background(), &models.User{Name: "Alice", Email: testAccount}))

	return &fixture{session: sess, taskRepo: taskRepo, vault: vaultRepo, settings: settingsRepo}
}

type stubParser struct {
	res *nlp.ParseResult
	err error
}

func (p *stubParser) Parse(context.Context, string) (*nlp.ParseResult, error) {
	return p.res, p.err
}

type stubSuggester struct {
	titles []string
	err    error
}

func (s *stubSuggester) Suggest(context.Context, string) ([]string, error) {
	return s.titles, s.err
}

func TestTaskAdd_ParsedFields(t *testing.T) {
	f := setup(t)
	due := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	parser := &stubParser{res: &nlp.ParseResult{
		Title:       "pay rent",
		DueDate:     &due,
		Priority:    models.PriorityHigh,
		Tags:        []string{"bills"},
		ProjectName: "Personal",
	}}
	svc := NewTaskService(f.session, f.taskRepo, parser, nil, nil)

	task, err := svc.Add(context.Background(), "pay rent tomorrow #bills !high", "")
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "pay rent", task.Title)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, "personal", task.ProjectID)
	assert.Equal(t, []string{"bills"}, task.Tags)
	assert.False(t, task.Completed)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due))

	// persisted and in the working set
	stored, err := f.taskRepo.GetByID(context.Background(), testAccount, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, stored.Title)
	assert.Len(t, f.session.Tasks(), 1)
}

func TestTaskAdd_ParserFailureFallsBack(t *testing.T) {
	f := setup(t)
	parser := &stubParser{err: assert.AnError}
	svc := NewTaskService(f.session, f.taskRepo, parser, nil, nil)

	task, err := svc.Add(context.Background(), "just the raw words", "")
	require.NoError(t, err)
	assert.Equal(t, "just the raw words", task.Title)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.ProjectInbox, task.ProjectID)
}

func TestTaskAdd_ActiveProjectWins(t *testing.T) {
	f := setup(t)
	parser := &stubParser{res: &nlp.ParseResult{Title: "call mom", ProjectName: "Work"}}
	svc := NewTaskService(f.session, f.taskRepo, parser, nil, nil)

	task, err := svc.Add(context.Background(), "call mom", "health")
	require.NoError(t, err)
	assert.Equal(t, "health", task.ProjectID)

	task, err = svc.Add(context.Background(), "call mom", ProjectAll)
	require.NoError(t, err)
	assert.Equal(t, "work", task.ProjectID)
}

func TestTaskToggle(t *testing.T) {
	f := setup(t)
	svc := NewTaskService(f.session, f.taskRepo, nil, nil, nil)

	task, err := svc.Add(context.Background(), "water plants", "")
	require.NoError(t, err)

	toggled, err := svc.Toggle(context.Background(), task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = svc.Toggle(context.Background(), task.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	_, err = svc.Toggle(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTaskDelete_Idempotent(t *testing.T) {
	f := setup(t)
	svc := NewTaskService(f.session, f.taskRepo, nil, nil, nil)

	task, err := svc.Add(context.Background(), "one", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), task.ID))
	require.NoError(t, svc.Delete(context.Background(), task.ID))
	assert.Empty(t, f.session.Tasks())
}

func TestSubtasks(t *testing.T) {
	f := setup(t)
	svc := NewTaskService(f.session, f.taskRepo, nil, &stubSuggester{titles: []string{"step 1", "step 2"}}, nil)

	task, err := svc.Add(context.Background(), "plan trip", "")
	require.NoError(t, err)

	task, err = svc.ExpandSubtasks(context.Background(), task.ID)
	require.NoError(t, err)
	require.Len(t, task.SubTasks, 2)
	assert.Equal(t, "step 1", task.SubTasks[0].Title)
	assert.NotEmpty(t, task.SubTasks[0].ID)
	assert.False(t, task.SubTasks[0].Completed)

	require.NoError(t, svc.UpdateSubtask(context.Background(), task.ID, task.SubTasks[1].ID, true))
	stored, err := f.taskRepo.GetByID(context.Background(), testAccount, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.SubTasks[1].Completed)
	assert.False(t, stored.SubTasks[0].Completed)
}

func TestExpandSubtasks_SuggesterFailureYieldsNone(t *testing.T) {
	f := setup(t)
	svc := NewTaskService(f.session, f.taskRepo, nil, &stubSuggester{err: assert.AnError}, nil)

	task, err := svc.Add(context.Background(), "plan trip", "")
	require.NoError(t, err)

	task, err = svc.ExpandSubtasks(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Empty(t, task.SubTasks)
}

func TestTaskList_FilterAndOrder(t *testing.T) {
	f := setup(t)
	svc := NewTaskService(f.session, f.taskRepo, nil, nil, nil)
	ctx := context.Background()

	older, err := svc.Add(ctx, "buy groceries", "")
	require.NoError(t, err)
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	require.NoError(t, f.taskRepo.Save(ctx, testAccount, older))
	f.session.PutTask(*older)

	done, err := svc.Add(ctx, "old chore", "")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, done.ID)
	require.NoError(t, err)

	newest, err := svc.Add(ctx, "buy tickets", "")
	require.NoError(t, err)

	all := svc.List(ctx, ProjectAll, "")
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID, "newest incomplete first")
	assert.Equal(t, done.ID, all[2].ID, "completed last")

	assert.Len(t, svc.List(ctx, ProjectAll, "buy"), 2)
	assert.Len(t, svc.List(ctx, models.ProjectInbox, ""), 3)
	assert.Empty(t, svc.List(ctx, "work", ""))
}

func TestVaultLockCycle(t *testing.T) {
	f := setup(t)
	svc := NewVaultService(f.session, f.vault, f.settings, nil)
	ctx := context.Background()

	has, err := svc.HasPasscode(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = svc.Add(ctx, "x.png", models.MediaImage, []byte{1})
	assert.ErrorIs(t, err, common.ErrVaultLocked)

	assert.ErrorIs(t, svc.SetPasscode(ctx, "12"), common.ErrPasscodeTooShort)
	assert.ErrorIs(t, svc.SetPasscode(ctx, "12ab"), common.ErrInvalidPasscode)
	require.NoError(t, svc.SetPasscode(ctx, "1234"))
	assert.True(t, svc.Unlocked())

	item, err := svc.Add(ctx, "x.png", models.MediaImage, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	svc.Lock()
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, common.ErrVaultLocked)

	assert.ErrorIs(t, svc.Unlock(ctx, "9999"), common.ErrInvalidPasscode)
	require.NoError(t, svc.Unlock(ctx, "1234"))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []byte{1, 2, 3}, items[0].Data)

	require.NoError(t, svc.Remove(ctx, item.ID))
	items, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestVaultUnlock_NoPasscodeSet(t *testing.T) {
	f := setup(t)
	svc := NewVaultService(f.session, f.vault, f.settings, nil)

	assert.ErrorIs(t, svc.Unlock(context.Background(), "1234"), common.ErrPasscodeNotSet)
}

func TestDetectMediaType(t *testing.T) {
	assert.Equal(t, models.MediaVideo, DetectMediaType("clip.MP4"))
	assert.Equal(t, models.MediaVideo, DetectMediaType("clip.webm"))
	assert.Equal(t, models.MediaImage, DetectMediaType("photo.jpg"))
	assert.Equal(t, models.MediaImage, DetectMediaType("noext"))
}
