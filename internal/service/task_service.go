package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"taskmanager/internal/model"
)

const maxTitleLength = 100

// TaskRepository is the persistence gateway consumed by TaskService.
type TaskRepository interface {
	ListAll(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id uint) (*model.Task, error)
	Add(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
	ExistsByTitle(ctx context.Context, title string, excludeID uint) (bool, error)
}

// Notifier receives task lifecycle events. Implementations must not block
// the calling operation on delivery.
type Notifier interface {
	TaskCompleted(ctx context.Context, task *model.Task)
}

// TaskService enforces task invariants and lifecycle rules. It is stateless
// between calls; all task state lives behind the repository.
type TaskService struct {
	repo     TaskRepository
	notifier Notifier
}

// NewTaskService creates a task service. notifier may be nil.
func NewTaskService(repo TaskRepository, notifier Notifier) *TaskService {
	return &TaskService{repo: repo, notifier: notifier}
}

// List returns all persisted tasks.
func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.repo.ListAll(ctx)
}

// Get returns the task with the given id, or nil if none exists. Absence is
// a valid outcome here, not an error; callers decide how to surface it.
func (s *TaskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and persists a new task. The creation timestamp is set
// to now unless already provided; the id is assigned by the repository and
// written back into task.
func (s *TaskService) Create(ctx context.Context, task *model.Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	if err := validateTask(task); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByTitle(ctx, task.Title, 0)
	if err != nil {
		return err
	}
	if exists {
		return validationErrorf("a task titled %q already exists", task.Title)
	}

	return s.repo.Add(ctx, task)
}

// Update validates and persists new field values for an existing task.
// Completed is a terminal status: once a task is completed its status can
// never change again. A fresh transition into Completed stamps CompletedAt
// with the current time unless the caller supplied one. Title uniqueness is
// not re-checked on update.
func (s *TaskService) Update(ctx context.Context, task *model.Task) error {
	existing, err := s.repo.GetByID(ctx, task.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{ID: task.ID}
	}

	if existing.Status == model.StatusCompleted && task.Status != model.StatusCompleted {
		return validationErrorf("cannot change the status of a completed task")
	}

	if err := validateTask(task); err != nil {
		return err
	}

	completed := task.Status == model.StatusCompleted && existing.Status != model.StatusCompleted
	if completed && task.CompletedAt == nil {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return err
	}

	if completed && s.notifier != nil {
		s.notifier.TaskCompleted(ctx, task)
	}
	return nil
}

// Delete removes the task with the given id. Any status may be deleted,
// completed tasks included.
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{ID: id}
	}
	return s.repo.Delete(ctx, id)
}

// validateTask runs the shared field validation. Checks run in a fixed
// order and the first violation wins: title presence, title length, then
// date ordering. It performs no I/O.
func validateTask(task *model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return validationErrorf("title is required")
	}
	if utf8.RuneCountInString(task.Title) > maxTitleLength {
		return validationErrorf("title must be at most %d characters", maxTitleLength)
	}
	if !task.DatesValid() {
		return validationErrorf("completion time cannot precede creation time")
	}
	return nil
}
