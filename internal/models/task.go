package models

import (
	"time"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Toggle flips pending and completed. Any other value becomes completed,
// matching a task that is not currently marked completed.
func (s TaskStatus) Toggle() TaskStatus {
	if s == TaskCompleted {
		return TaskPending
	}
	return TaskCompleted
}

// Task is a document in the top-level "tasks" collection. The document ID is
// assigned by Firestore on creation and is not stored as a field.
type Task struct {
	ID        string     `firestore:"-" json:"id"`
	Title     string     `firestore:"title" json:"title"`
	Status    TaskStatus `firestore:"status" json:"status"`
	UserID    string     `firestore:"userId" json:"userId"`
	CreatedAt time.Time  `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}
