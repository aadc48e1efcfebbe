package tasksync

import (
	"testing"

	"github.com/GregMSThompson/task-tracker/internal/errs"
	"github.com/GregMSThompson/task-tracker/internal/models"
)

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"":          FilterAll,
		"all":       FilterAll,
		"pending":   FilterPending,
		"completed": FilterCompleted,
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		if err != nil || got != want {
			t.Fatalf("ParseFilter(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	_, err := ParseFilter("done")
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("ParseFilter(done) error = %T, want *errs.ValidationError", err)
	}
}

func TestBuildView(t *testing.T) {
	tasks := []models.Task{
		{ID: "3", Status: models.TaskCompleted},
		{ID: "2", Status: models.TaskPending},
		{ID: "1", Status: models.TaskPending},
	}

	v := BuildView(tasks, FilterPending)
	if len(v.Tasks) != 2 || v.Tasks[0].ID != "2" || v.Tasks[1].ID != "1" {
		t.Fatalf("pending view lost order or members: %+v", v.Tasks)
	}
	if v.Counts != (Counts{All: 3, Pending: 2, Completed: 1}) {
		t.Fatalf("unexpected counts: %+v", v.Counts)
	}

	all := BuildView(tasks, FilterAll)
	if len(all.Tasks) != all.Counts.All {
		t.Fatalf("all view has %d tasks, count %d", len(all.Tasks), all.Counts.All)
	}
}

func TestEmptyViewHasNonNilTasks(t *testing.T) {
	v := BuildView(nil, FilterAll)
	if v.Tasks == nil || !v.Empty() {
		t.Fatalf("empty view should carry an empty, non-nil slice")
	}
}

func TestToggle(t *testing.T) {
	if models.TaskPending.Toggle() != models.TaskCompleted {
		t.Fatalf("pending should toggle to completed")
	}
	if models.TaskCompleted.Toggle() != models.TaskPending {
		t.Fatalf("completed should toggle to pending")
	}
}
