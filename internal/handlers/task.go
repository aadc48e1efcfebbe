package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/GregMSThompson/task-tracker/internal/dto"
	"github.com/GregMSThompson/task-tracker/internal/middleware"
	"github.com/GregMSThompson/task-tracker/internal/models"
	"github.com/GregMSThompson/task-tracker/internal/response"
	"github.com/GregMSThompson/task-tracker/internal/tasksync"
	"github.com/GregMSThompson/task-tracker/internal/ws"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

type taskService interface {
	ListTasks(ctx context.Context, uid string, filter tasksync.Filter) (tasksync.View, error)
	CreateTask(ctx context.Context, uid, title string) (string, error)
	ToggleTask(ctx context.Context, uid, taskID string) (models.TaskStatus, error)
	DeleteTask(ctx context.Context, uid, taskID string) error
}

type taskHandlers struct {
	ResponseHandler response.ResponseHandler
	TaskSvc         taskService
	LiveTasks       ws.TaskStore
	upgrader        websocket.Upgrader
}

func NewTaskHandlers(deps *Deps) *taskHandlers {
	allowedOrigin := deps.AllowedOrigin
	return &taskHandlers{
		ResponseHandler: deps.ResponseHandler,
		TaskSvc:         deps.TaskSvc,
		LiveTasks:       deps.LiveTasks,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

func (h *taskHandlers) TaskRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTasks)
	r.Post("/", h.CreateTask)
	r.Get("/live", h.Live) // must be before /{taskId}
	r.Patch("/{taskId}/toggle", h.ToggleTask)
	r.Delete("/{taskId}", h.DeleteTask)
	return r
}

func (h *taskHandlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := tasksync.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	view, err := h.TaskSvc.ListTasks(r.Context(), uid, filter)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *taskHandlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	id, err := h.TaskSvc.CreateTask(r.Context(), uid, req.Title)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dto.CreateTaskResponse{ID: id})
}

func (h *taskHandlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskId")
	uid := middleware.UID(r.Context())
	status, err := h.TaskSvc.ToggleTask(r.Context(), uid, taskID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.ToggleTaskResponse{ID: taskID, Status: status})
}

func (h *taskHandlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskId")
	uid := middleware.UID(r.Context())
	if err := h.TaskSvc.DeleteTask(r.Context(), uid, taskID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

// Live upgrades to a websocket and streams the caller's task list until the
// client disconnects.
func (h *taskHandlers) Live(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		logger.FromContext(r.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}

	// the request context ends with this handler; the session closes its
	// subscription itself
	ctx := context.WithoutCancel(r.Context())
	ws.Serve(ctx, conn, middleware.Identity(r.Context()), h.LiveTasks)
}
