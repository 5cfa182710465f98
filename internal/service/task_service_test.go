package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// setupService wires the service to a fresh in-memory SQLite repository.
func setupService(t *testing.T) (*TaskService, *repository.TaskRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	repo := repository.NewTaskRepository(db)
	return NewTaskService(repo, nil), repo
}

func assertValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return verr
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and creation time", func(t *testing.T) {
		svc, _ := setupService(t)

		task := model.Task{Title: "Buy milk", Status: model.StatusPending}
		if err := svc.Create(ctx, &task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if task.ID == 0 {
			t.Error("expected assigned id, got 0")
		}
		if since := time.Since(task.CreatedAt); since < 0 || since > time.Second {
			t.Errorf("expected CreatedAt near now, got %v", task.CreatedAt)
		}
		if task.CompletedAt != nil {
			t.Errorf("expected nil CompletedAt, got %v", task.CompletedAt)
		}
	})

	t.Run("keeps an explicit creation time", func(t *testing.T) {
		svc, _ := setupService(t)

		created := time.Date(2026, 1, 13, 14, 30, 0, 0, time.UTC)
		task := model.Task{Title: "Backfill", CreatedAt: created}
		if err := svc.Create(ctx, &task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if !task.CreatedAt.Equal(created) {
			t.Errorf("expected CreatedAt %v, got %v", created, task.CreatedAt)
		}
	})

	t.Run("empty title", func(t *testing.T) {
		svc, _ := setupService(t)

		err := svc.Create(ctx, &model.Task{Title: "   "})
		verr := assertValidationError(t, err)
		if verr.Error() != "title is required" {
			t.Errorf("unexpected message %q", verr.Error())
		}
	})

	t.Run("title length limit", func(t *testing.T) {
		svc, _ := setupService(t)

		if err := svc.Create(ctx, &model.Task{Title: strings.Repeat("a", 101)}); err == nil {
			t.Error("expected error for 101-character title")
		} else {
			assertValidationError(t, err)
		}

		if err := svc.Create(ctx, &model.Task{Title: strings.Repeat("a", 100)}); err != nil {
			t.Errorf("expected 100-character title to pass, got %v", err)
		}
	})

	t.Run("completion before creation", func(t *testing.T) {
		svc, _ := setupService(t)

		created := time.Date(2026, 1, 13, 14, 30, 0, 0, time.UTC)
		completed := created.Add(-15 * time.Minute)
		err := svc.Create(ctx, &model.Task{
			Title:       "Time travel",
			CreatedAt:   created,
			CompletedAt: &completed,
		})
		assertValidationError(t, err)
	})

	t.Run("duplicate title differing only by case", func(t *testing.T) {
		svc, _ := setupService(t)

		if err := svc.Create(ctx, &model.Task{Title: "Buy milk"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		err := svc.Create(ctx, &model.Task{Title: "BUY MILK"})
		assertValidationError(t, err)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	task, err := svc.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if task != nil {
		t.Errorf("expected nil for absent id, got %+v", task)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	for _, title := range []string{"one", "two", "three"} {
		if err := svc.Create(ctx, &model.Task{Title: title}); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
	}

	tasks, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(tasks))
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("absent id", func(t *testing.T) {
		svc, _ := setupService(t)

		err := svc.Update(ctx, &model.Task{ID: 99, Title: "ghost"})
		assertNotFoundError(t, err)
	})

	t.Run("completed status is terminal", func(t *testing.T) {
		svc, _ := setupService(t)

		task := model.Task{Title: "done deal", Status: model.StatusCompleted}
		if err := svc.Create(ctx, &task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		reopened := task
		reopened.Status = model.StatusInProgress
		assertValidationError(t, svc.Update(ctx, &reopened))

		// Staying completed is fine.
		still := task
		still.Description = "with a note"
		if err := svc.Update(ctx, &still); err != nil {
			t.Errorf("expected completed->completed update to pass, got %v", err)
		}
	})

	t.Run("fresh completion stamps time", func(t *testing.T) {
		svc, _ := setupService(t)

		task := model.Task{Title: "ship it", Status: model.StatusInProgress}
		if err := svc.Create(ctx, &task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		task.Status = model.StatusCompleted
		if err := svc.Update(ctx, &task); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if task.CompletedAt == nil {
			t.Fatal("expected CompletedAt to be set")
		}
		if since := time.Since(*task.CompletedAt); since < 0 || since > time.Second {
			t.Errorf("expected CompletedAt near now, got %v", task.CompletedAt)
		}

		stored, err := svc.Get(ctx, task.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if stored.CompletedAt == nil {
			t.Error("expected stored CompletedAt to be set")
		}
	})

	t.Run("explicit completion time is kept", func(t *testing.T) {
		svc, _ := setupService(t)

		created := time.Date(2026, 1, 13, 14, 30, 0, 0, time.UTC)
		task := model.Task{Title: "with timestamp", CreatedAt: created}
		if err := svc.Create(ctx, &task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		completed := created.Add(15 * time.Minute)
		task.Status = model.StatusCompleted
		task.CompletedAt = &completed
		if err := svc.Update(ctx, &task); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !task.CompletedAt.Equal(completed) {
			t.Errorf("expected CompletedAt %v, got %v", completed, task.CompletedAt)
		}
	})

	t.Run("completion before creation", func(t *testing.T) {
		svc, _ := setupService(t)

		created := time.Date(2026, 1, 13, 14, 30, 0, 0, time.UTC)
		task := model.Task{Title: "ordered", CreatedAt: created}
		if err := svc.Create(ctx, &task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		early := created.Add(-15 * time.Minute)
		bad := task
		bad.Status = model.StatusCompleted
		bad.CompletedAt = &early
		assertValidationError(t, svc.Update(ctx, &bad))
	})

	t.Run("does not re-check title uniqueness", func(t *testing.T) {
		svc, _ := setupService(t)

		first := model.Task{Title: "original"}
		if err := svc.Create(ctx, &first); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		second := model.Task{Title: "other"}
		if err := svc.Create(ctx, &second); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		second.Title = "Original"
		if err := svc.Update(ctx, &second); err != nil {
			t.Errorf("expected update with clashing title to pass, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("absent id", func(t *testing.T) {
		svc, _ := setupService(t)
		assertNotFoundError(t, svc.Delete(ctx, 7))
	})

	t.Run("removes the task", func(t *testing.T) {
		svc, _ := setupService(t)

		task := model.Task{Title: "short lived", Status: model.StatusCompleted}
		if err := svc.Create(ctx, &task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if err := svc.Delete(ctx, task.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		got, err := svc.Get(ctx, task.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != nil {
			t.Errorf("expected nil after delete, got %+v", got)
		}
	})
}

type recordingNotifier struct {
	completed []uint
}

func (n *recordingNotifier) TaskCompleted(_ context.Context, task *model.Task) {
	n.completed = append(n.completed, task.ID)
}

func TestNotifierFiresOnFreshCompletionOnly(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupService(t)

	notifier := &recordingNotifier{}
	svc = NewTaskService(repo, notifier)

	task := model.Task{Title: "announce me"}
	if err := svc.Create(ctx, &task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	task.Status = model.StatusCompleted
	if err := svc.Update(ctx, &task); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(notifier.completed) != 1 || notifier.completed[0] != task.ID {
		t.Fatalf("expected one completion notification for %d, got %v", task.ID, notifier.completed)
	}

	// A second update that stays completed must not notify again.
	task.Description = "still done"
	if err := svc.Update(ctx, &task); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(notifier.completed) != 1 {
		t.Errorf("expected no second notification, got %v", notifier.completed)
	}
}
