// Package services contains the application services built on top of the
// local store, the session, and the sync coordinator.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow/internal/logging"
	"github.com/focusflow/focusflow/internal/models"
	"github.com/focusflow/focusflow/internal/nlp"
	"github.com/focusflow/focusflow/internal/repositories/tasks"
	"github.com/focusflow/focusflow/internal/session"
)

// ProjectAll is the pseudo-project meaning "no project filter".
const ProjectAll = "all"

// TaskService implements the task operations: capture, toggle, delete,
// subtask management, and listing. Every mutation persists to the local
// store first and then updates the session working set, which schedules a
// debounced push.
type TaskService struct {
	session   *session.Session
	repo      tasks.Repository
	parser    nlp.Parser
	suggester nlp.Suggester
	log       logging.Logger
}

func NewTaskService(sess *session.Session, repo tasks.Repository, parser nlp.Parser, suggester nlp.Suggester, log logging.Logger) *TaskService {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &TaskService{session: sess, repo: repo, parser: parser, suggester: suggester, log: log}
}

// Add captures a new task from free-form input. Parser failures degrade to
// the raw input as the title; the stored record is the same shape either way.
func (s *TaskService) Add(ctx context.Context, input, activeProjectID string) (*models.Task, error) {
	account, err := s.session.AccountID()
	if err != nil {
		return nil, err
	}

	parsed := nlp.ParseOrFallback(ctx, s.parser, input)

	projectID := activeProjectID
	if projectID == "" || projectID == ProjectAll {
		if parsed.ProjectName != "" {
			projectID = strings.ToLower(parsed.ProjectName)
		} else {
			projectID = models.ProjectInbox
		}
	}

	priority := parsed.Priority
	if !priority.Valid() {
		priority = models.PriorityMedium
	}

	tags := parsed.Tags
	if tags == nil {
		tags = []string{}
	}

	task := &models.Task{
		ID:        uuid.NewString(),
		Title:     parsed.Title,
		DueDate:   parsed.DueDate,
		Priority:  priority,
		ProjectID: projectID,
		Tags:      tags,
		Completed: false,
		SubTasks:  []models.SubTask{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, account, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	s.session.PutTask(*task)
	return task, nil
}

// Toggle flips the completion state of a task.
func (s *TaskService) Toggle(ctx context.Context, id string) (*models.Task, error) {
	account, err := s.session.AccountID()
	if err != nil {
		return nil, err
	}
	task, err := s.repo.GetByID(ctx, account, id)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.repo.Save(ctx, account, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	s.session.PutTask(*task)
	return task, nil
}

// Delete removes a task. Deleting an unknown id is not an error.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	account, err := s.session.AccountID()
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, account, id); err != nil {
		return err
	}
	s.session.RemoveTask(id)
	return nil
}

// UpdateSubtask sets the completion state of one subtask.
func (s *TaskService) UpdateSubtask(ctx context.Context, taskID, subtaskID string, completed bool) error {
	account, err := s.session.AccountID()
	if err != nil {
		return err
	}
	task, err := s.repo.GetByID(ctx, account, taskID)
	if err != nil {
		return err
	}

	for i := range task.SubTasks {
		if task.SubTasks[i].ID == subtaskID {
			task.SubTasks[i].Completed = completed
		}
	}

	if err := s.repo.Save(ctx, account, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	s.session.PutTask(*task)
	return nil
}

// AddSubtasks appends subtasks with the given titles, each wrapped into a
// fresh record with a new id and completed=false.
func (s *TaskService) AddSubtasks(ctx context.Context, taskID string, titles []string) (*models.Task, error) {
	account, err := s.session.AccountID()
	if err != nil {
		return nil, err
	}
	task, err := s.repo.GetByID(ctx, account, taskID)
	if err != nil {
		return nil, err
	}

	for _, title := range titles {
		task.SubTasks = append(task.SubTasks, models.SubTask{
			ID:        uuid.NewString(),
			Title:     title,
			Completed: false,
		})
	}

	if err := s.repo.Save(ctx, account, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	s.session.PutTask(*task)
	return task, nil
}

// ExpandSubtasks asks the suggester for subtask titles and appends them.
// A suggester failure yields no subtasks rather than an error: suggestions
// are decoration, not data the user typed.
func (s *TaskService) ExpandSubtasks(ctx context.Context, taskID string) (*models.Task, error) {
	account, err := s.session.AccountID()
	if err != nil {
		return nil, err
	}
	task, err := s.repo.GetByID(ctx, account, taskID)
	if err != nil {
		return nil, err
	}

	if s.suggester == nil {
		return task, nil
	}

	titles, err := s.suggester.Suggest(ctx, task.Title)
	if err != nil {
		s.log.Warn(ctx, "subtask suggestion failed", "task", taskID, "error", err)
		return task, nil
	}
	if len(titles) == 0 {
		return task, nil
	}

	return s.AddSubtasks(ctx, taskID, titles)
}

// List returns the working set filtered by project and search query,
// incomplete tasks first, newest first within each group.
func (s *TaskService) List(ctx context.Context, projectID, query string) []models.Task {
	list := s.session.Tasks()

	filtered := list[:0]
	query = strings.ToLower(query)
	for _, t := range list {
		if projectID != "" && projectID != ProjectAll && t.ProjectID != projectID {
			continue
		}
		if query != "" && !matchesQuery(&t, query) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Completed != filtered[j].Completed {
			return !filtered[i].Completed
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered
}

func matchesQuery(t *models.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
