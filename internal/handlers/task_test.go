package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/task-tracker/internal/dto"
	"github.com/GregMSThompson/task-tracker/internal/errs"
	"github.com/GregMSThompson/task-tracker/internal/models"
	"github.com/GregMSThompson/task-tracker/internal/tasksync"
)

type stubTaskService struct {
	listCalled bool
	listFilter tasksync.Filter
	view       tasksync.View
	listErr    error

	createTitle string
	createID    string
	createErr   error

	toggleID  string
	toggleErr error

	deleteID  string
	deleteErr error
}

func (s *stubTaskService) ListTasks(_ context.Context, _ string, filter tasksync.Filter) (tasksync.View, error) {
	s.listCalled = true
	s.listFilter = filter
	return s.view, s.listErr
}

func (s *stubTaskService) CreateTask(_ context.Context, _, title string) (string, error) {
	s.createTitle = title
	return s.createID, s.createErr
}

func (s *stubTaskService) ToggleTask(_ context.Context, _, taskID string) (models.TaskStatus, error) {
	s.toggleID = taskID
	return models.TaskCompleted, s.toggleErr
}

func (s *stubTaskService) DeleteTask(_ context.Context, _, taskID string) error {
	s.deleteID = taskID
	return s.deleteErr
}

func TestListTasksFilter(t *testing.T) {
	svc := &stubTaskService{}
	resp := &stubResponseHandler{}
	h := NewTaskHandlers(&Deps{ResponseHandler: resp, TaskSvc: svc})

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/tasks?filter=completed", nil), "uid-1", "")
	rr := httptest.NewRecorder()
	h.ListTasks(rr, req)

	if svc.listFilter != tasksync.FilterCompleted {
		t.Fatalf("filter = %q", svc.listFilter)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess with 200")
	}
}

func TestListTasksDefaultsToAll(t *testing.T) {
	svc := &stubTaskService{}
	resp := &stubResponseHandler{}
	h := NewTaskHandlers(&Deps{ResponseHandler: resp, TaskSvc: svc})

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/tasks", nil), "uid-1", "")
	h.ListTasks(httptest.NewRecorder(), req)

	if svc.listFilter != tasksync.FilterAll {
		t.Fatalf("filter = %q", svc.listFilter)
	}
}

func TestListTasksInvalidFilter(t *testing.T) {
	svc := &stubTaskService{}
	resp := &stubResponseHandler{}
	h := NewTaskHandlers(&Deps{ResponseHandler: resp, TaskSvc: svc})

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/tasks?filter=archived", nil), "uid-1", "")
	h.ListTasks(httptest.NewRecorder(), req)

	if svc.listCalled {
		t.Fatalf("invalid filter should not reach the service")
	}
	if _, ok := resp.handleError.(*errs.ValidationError); !ok {
		t.Fatalf("expected validation error, got %v", resp.handleError)
	}
}

func TestCreateTask(t *testing.T) {
	svc := &stubTaskService{createID: "t1"}
	resp := &stubResponseHandler{}
	h := NewTaskHandlers(&Deps{ResponseHandler: resp, TaskSvc: svc})

	req := withIdentity(httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"Buy milk"}`)), "uid-1", "")
	h.CreateTask(httptest.NewRecorder(), req)

	if svc.createTitle != "Buy milk" {
		t.Fatalf("title = %q", svc.createTitle)
	}
	if resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("status = %d", resp.writeSuccessStatus)
	}
	if got := resp.writeSuccessData.(dto.CreateTaskResponse); got.ID != "t1" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestToggleTask(t *testing.T) {
	svc := &stubTaskService{}
	resp := &stubResponseHandler{}
	h := NewTaskHandlers(&Deps{ResponseHandler: resp, TaskSvc: svc})

	req := httptest.NewRequest(http.MethodPatch, "/tasks/t1/toggle", nil)
	req = withChiParam(withIdentity(req, "uid-1", ""), "taskId", "t1")
	h.ToggleTask(httptest.NewRecorder(), req)

	if svc.toggleID != "t1" {
		t.Fatalf("toggle id = %q", svc.toggleID)
	}
	got := resp.writeSuccessData.(dto.ToggleTaskResponse)
	if got.Status != models.TaskCompleted {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestDeleteTaskNotOwned(t *testing.T) {
	svc := &stubTaskService{deleteErr: errs.NewNotFoundError("task not found")}
	resp := &stubResponseHandler{}
	h := NewTaskHandlers(&Deps{ResponseHandler: resp, TaskSvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/tasks/t9", nil)
	req = withChiParam(withIdentity(req, "uid-1", ""), "taskId", "t9")
	h.DeleteTask(httptest.NewRecorder(), req)

	if svc.deleteID != "t9" {
		t.Fatalf("delete id = %q", svc.deleteID)
	}
	if _, ok := resp.handleError.(*errs.NotFoundError); !ok {
		t.Fatalf("expected not found, got %v", resp.handleError)
	}
}

func TestLiveRejectsForeignOrigin(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewTaskHandlers(&Deps{ResponseHandler: resp, AllowedOrigin: "https://tasks.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/tasks/live", nil)
	req.Header.Set("Connection", "upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	h.Live(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
}
