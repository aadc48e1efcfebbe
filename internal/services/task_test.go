package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/task-tracker/internal/errs"
	"github.com/GregMSThompson/task-tracker/internal/models"
	"github.com/GregMSThompson/task-tracker/internal/tasksync"
	"github.com/GregMSThompson/task-tracker/pkg/helpers"
)

type stubTaskStore struct {
	tasks   []models.Task
	listErr error

	created   *models.Task
	createErr error

	toggled   string
	toggleRes models.TaskStatus
	toggleErr error

	deleted   string
	deleteErr error
}

func (s *stubTaskStore) List(_ context.Context, _ string) ([]models.Task, error) {
	return s.tasks, s.listErr
}

func (s *stubTaskStore) Create(_ context.Context, task *models.Task) (string, error) {
	s.created = task
	return "task-1", s.createErr
}

func (s *stubTaskStore) Toggle(_ context.Context, uid, taskID string) (models.TaskStatus, error) {
	s.toggled = uid + ":" + taskID
	return s.toggleRes, s.toggleErr
}

func (s *stubTaskStore) Delete(_ context.Context, uid, taskID string) error {
	s.deleted = uid + ":" + taskID
	return s.deleteErr
}

func TestTaskServiceListTasks(t *testing.T) {
	store := &stubTaskStore{tasks: []models.Task{
		{ID: "b", Status: models.TaskCompleted},
		{ID: "a", Status: models.TaskPending},
	}}
	svc := NewTaskService(store)

	view, err := svc.ListTasks(helpers.TestCtx(), "uid-1", tasksync.FilterCompleted)
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if len(view.Tasks) != 1 || view.Tasks[0].ID != "b" {
		t.Fatalf("unexpected filtered tasks: %+v", view.Tasks)
	}
	if view.Counts.All != 2 || view.Counts.Pending != 1 || view.Counts.Completed != 1 {
		t.Fatalf("unexpected counts: %+v", view.Counts)
	}
}

func TestTaskServiceCreateTask(t *testing.T) {
	store := &stubTaskStore{}
	svc := NewTaskService(store)

	id, err := svc.CreateTask(helpers.TestCtx(), "uid-1", "Buy milk")
	if err != nil || id != "task-1" {
		t.Fatalf("CreateTask = %q, %v", id, err)
	}
	if store.created.Status != models.TaskPending || store.created.UserID != "uid-1" || store.created.Title != "Buy milk" {
		t.Fatalf("unexpected task: %+v", store.created)
	}
	if !store.created.CreatedAt.IsZero() {
		t.Fatalf("createdAt must be left for the server timestamp")
	}
}

func TestTaskServiceCreateTaskRejectsBlankTitle(t *testing.T) {
	store := &stubTaskStore{}
	svc := NewTaskService(store)

	_, err := svc.CreateTask(helpers.TestCtx(), "uid-1", "   ")
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("CreateTask error = %T, want validation error", err)
	}
	if store.created != nil {
		t.Fatalf("blank title reached the store")
	}
}

func TestTaskServiceToggleAndDelete(t *testing.T) {
	store := &stubTaskStore{toggleRes: models.TaskCompleted}
	svc := NewTaskService(store)

	st, err := svc.ToggleTask(helpers.TestCtx(), "uid-1", "t1")
	if err != nil || st != models.TaskCompleted || store.toggled != "uid-1:t1" {
		t.Fatalf("ToggleTask = %s, %v (store %q)", st, err, store.toggled)
	}
	if err := svc.DeleteTask(helpers.TestCtx(), "uid-1", "t1"); err != nil || store.deleted != "uid-1:t1" {
		t.Fatalf("DeleteTask = %v (store %q)", err, store.deleted)
	}

	store.deleteErr = errs.NewNotFoundError("task not found")
	if err := svc.DeleteTask(helpers.TestCtx(), "uid-1", "t2"); !errors.Is(err, store.deleteErr) {
		t.Fatalf("DeleteTask error = %v", err)
	}
}
