package output

import (
	"bytes"
	"testing"

	"checkmate/internal/service"
	"checkmate/internal/testutil"
)

func sampleTasks() []service.Task {
	return []service.Task{
		{ID: "abc123de-0000", Title: "Buy milk", Notes: "2 litres", SortPosition: 2},
		{ID: "zzz000aa-1111", Title: "Call mom", SortPosition: 1},
		{ID: "done0001-2222", Title: "File taxes", Completed: true, CompleteTime: "October 17, 2026 09:30:00", SortPosition: 0},
		{ID: "short", Title: "  ", Completed: true, SortPosition: 5},
	}
}

func TestRenderTasks(t *testing.T) {
	tests := []struct {
		name   string
		golden string
		opts   Options
	}{
		{"default", "list_default", Options{}},
		{"verbose", "list_verbose", Options{Verbose: true}},
		{"hide completed", "list_hide_completed", Options{HideCompleted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderTasks(&buf, sampleTasks(), tt.opts)
			testutil.GoldenString(t, tt.golden, buf.String())
		})
	}
}

func TestRenderTasks_DoesNotReorderInput(t *testing.T) {
	tasks := sampleTasks()
	RenderTasks(&bytes.Buffer{}, tasks, Options{})

	if tasks[0].ID != "abc123de-0000" || tasks[1].ID != "zzz000aa-1111" {
		t.Errorf("input collection was reordered: %v", tasks)
	}
}

func TestRenderTasks_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderTasks(&buf, nil, Options{})

	if buf.String() != "no tasks found\n" {
		t.Errorf("expected %q, got %q", "no tasks found\n", buf.String())
	}
}

func TestRenderTasks_OnlyCompleted(t *testing.T) {
	var buf bytes.Buffer
	RenderTasks(&buf, []service.Task{{ID: "a", Title: "Done", Completed: true}}, Options{})

	expected := "Completed Tasks:\n  ✓ [a] Done\n\nTotal: 0 incomplete, 1 completed\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTask_MultilineTitle(t *testing.T) {
	var buf bytes.Buffer
	formatTask(&buf, newStyles(&buf), service.Task{ID: "abcdefghij", Title: "line one\nline two"}, false)

	expected := "  ○ [abcdefgh] line one line two\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestShortID(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"abc":        "abc",
		"abcdefgh":   "abcdefgh",
		"abcdefghij": "abcdefgh",
	}
	for in, want := range tests {
		if got := ShortID(in); got != want {
			t.Errorf("ShortID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatTask_Verbose(t *testing.T) {
	var buf bytes.Buffer
	task := service.Task{ID: "a", Title: "Done", Notes: "n", Completed: true, CompleteTime: "October 17, 2026 09:30:00"}
	formatTask(&buf, newStyles(&buf), task, true)

	expected := "  ✓ [a] Done\n    Notes: n\n    Completed: October 17, 2026 09:30:00\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
