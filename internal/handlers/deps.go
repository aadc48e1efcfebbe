package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/task-tracker/internal/response"
	"github.com/GregMSThompson/task-tracker/internal/ws"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	AuthSvc         authService
	ProfileSvc      profileService
	TaskSvc         taskService
	LiveTasks       ws.TaskStore
	AllowedOrigin   string
}
