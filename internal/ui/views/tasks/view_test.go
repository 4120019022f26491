package tasks

import (
	"strings"
	"testing"

	taskdomain "timetrack/internal/modules/task/domain"
)

func TestSetTasksSelectsFirstInOrder(t *testing.T) {
	t.Parallel()
	m := New()
	m.SetTasks([]taskdomain.Task{
		{ID: 3, Name: "triage", Priority: taskdomain.PriorityHigh},
		{ID: 1, Name: "refactor", Priority: taskdomain.PriorityLow},
	})

	selected, ok := m.Selected()
	if !ok || selected.ID != 3 {
		t.Fatalf("expected first reported task selected, got %+v", selected)
	}
	if got := m.TaskName(1); got != "refactor" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := m.TaskName(42); got != "task #42" {
		t.Fatalf("unexpected placeholder %q", got)
	}
}

func TestViewStates(t *testing.T) {
	t.Parallel()
	m := New()
	if !strings.Contains(m.View(), "Loading tasks") {
		t.Fatalf("expected loading view")
	}
	m.SetTasks(nil)
	if !strings.Contains(m.View(), "No tasks yet") {
		t.Fatalf("expected empty hint, got %q", m.View())
	}
	if _, ok := m.Selected(); ok {
		t.Fatalf("nothing should be selected in an empty list")
	}
}
