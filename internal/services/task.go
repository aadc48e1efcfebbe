package services

import (
	"context"
	"strings"

	"github.com/GregMSThompson/task-tracker/internal/errs"
	"github.com/GregMSThompson/task-tracker/internal/models"
	"github.com/GregMSThompson/task-tracker/internal/tasksync"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

type taskTSStore interface {
	List(ctx context.Context, uid string) ([]models.Task, error)
	Create(ctx context.Context, task *models.Task) (string, error)
	Toggle(ctx context.Context, uid, taskID string) (models.TaskStatus, error)
	Delete(ctx context.Context, uid, taskID string) error
}

type taskService struct {
	Store taskTSStore
}

func NewTaskService(store taskTSStore) *taskService {
	return &taskService{Store: store}
}

// ListTasks returns the same view the live list renders, from a one-shot read.
func (s *taskService) ListTasks(ctx context.Context, uid string, filter tasksync.Filter) (tasksync.View, error) {
	tasks, err := s.Store.List(ctx, uid)
	if err != nil {
		return tasksync.View{}, err
	}
	return tasksync.BuildView(tasks, filter), nil
}

func (s *taskService) CreateTask(ctx context.Context, uid, title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", errs.NewValidationError("title is required")
	}

	task := &models.Task{
		Title:  title,
		Status: models.TaskPending,
		UserID: uid,
	}
	id, err := s.Store.Create(ctx, task)
	if err != nil {
		return "", err
	}

	logger.FromContext(ctx).Debug("task created", "task_id", id)
	return id, nil
}

func (s *taskService) ToggleTask(ctx context.Context, uid, taskID string) (models.TaskStatus, error) {
	return s.Store.Toggle(ctx, uid, taskID)
}

func (s *taskService) DeleteTask(ctx context.Context, uid, taskID string) error {
	if err := s.Store.Delete(ctx, uid, taskID); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("task deleted", "task_id", taskID)
	return nil
}
