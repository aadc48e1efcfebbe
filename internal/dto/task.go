package dto

import "github.com/GregMSThompson/task-tracker/internal/models"

type CreateTaskRequest struct {
	Title string `json:"title"`
}

type CreateTaskResponse struct {
	ID string `json:"id"`
}

// LiveCommand is a message sent by the client over the live task socket.
type LiveCommand struct {
	Type   string `json:"type"` // "add", "toggle", "delete", "filter"
	Title  string `json:"title,omitempty"`
	ID     string `json:"id,omitempty"`
	Filter string `json:"filter,omitempty"`
}

const (
	LiveAdd    = "add"
	LiveToggle = "toggle"
	LiveDelete = "delete"
	LiveFilter = "filter"

	LiveView    = "view"
	LiveCleared = "cleared"
	LiveError   = "error"
)

type LiveNotice struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type ToggleTaskResponse struct {
	ID     string            `json:"id"`
	Status models.TaskStatus `json:"status"`
}
