package tasksync

import (
	"github.com/GregMSThompson/task-tracker/internal/errs"
	"github.com/GregMSThompson/task-tracker/internal/models"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// ParseFilter accepts the three filter kinds. An empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending, FilterCompleted:
		return Filter(s), nil
	default:
		return "", errs.NewValidationError("filter must be one of all, pending, completed")
	}
}

type Counts struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// View is what a task list renders: the filtered tasks in store order plus
// the per-tab counts taken from the full list.
type View struct {
	Filter Filter        `json:"filter"`
	Tasks  []models.Task `json:"tasks"`
	Counts Counts        `json:"counts"`
}

// Empty reports whether the empty-state message should be shown.
func (v View) Empty() bool {
	return len(v.Tasks) == 0
}

func FilterTasks(tasks []models.Task, f Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f == FilterAll || t.Status == models.TaskStatus(f) {
			out = append(out, t)
		}
	}
	return out
}

func CountTasks(tasks []models.Task) Counts {
	c := Counts{All: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskPending:
			c.Pending++
		case models.TaskCompleted:
			c.Completed++
		}
	}
	return c
}

func BuildView(tasks []models.Task, f Filter) View {
	return View{
		Filter: f,
		Tasks:  FilterTasks(tasks, f),
		Counts: CountTasks(tasks),
	}
}
