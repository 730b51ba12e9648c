package commands

import (
	"errors"
	"testing"

	"tasklist/internal/service"
)

var refTasks = []service.Task{
	{ID: "665f1c2a", Name: "Alice", Age: 30},
	{ID: "665f1c2b", Name: "Bob", Age: 25},
	{ID: "42abc", Name: "Carol", Age: 41},
}

func TestParseTaskRef(t *testing.T) {
	ref, err := ParseTaskRef([]string{" 2 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "2" {
		t.Errorf("expected %q, got %q", "2", ref)
	}
}

func TestParseTaskRef_Missing(t *testing.T) {
	for _, args := range [][]string{nil, {""}, {"   "}} {
		_, err := ParseTaskRef(args)
		if !errors.Is(err, ErrTaskRefRequired) {
			t.Errorf("args %q: expected ErrTaskRefRequired, got %v", args, err)
		}
	}
}

func TestParseTaskRef_ExtraArgument(t *testing.T) {
	_, err := ParseTaskRef([]string{"1", "2"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "unexpected argument: 2" {
		t.Errorf("expected %q, got %q", "unexpected argument: 2", err.Error())
	}
}

func TestResolveTask_Position(t *testing.T) {
	task, err := ResolveTask(refTasks, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Name != "Bob" {
		t.Errorf("expected Bob, got %q", task.Name)
	}
}

func TestResolveTask_PositionOutOfRange(t *testing.T) {
	for _, ref := range []string{"0", "4", "99999999999999999999"} {
		_, err := ResolveTask(refTasks, ref)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("ref %q: expected ErrTaskNotFound, got %v", ref, err)
		}
	}
	_, err := ResolveTask(refTasks, "4")
	expected := "task not found: number out of range: 4"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestResolveTask_ID(t *testing.T) {
	task, err := ResolveTask(refTasks, "42abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Name != "Carol" {
		t.Errorf("expected Carol, got %q", task.Name)
	}
}

func TestResolveTask_UnknownID(t *testing.T) {
	_, err := ResolveTask(refTasks, "nope")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if err.Error() != "task not found: nope" {
		t.Errorf("expected %q, got %q", "task not found: nope", err.Error())
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123", true},
		{"0", true},
		{"", false},
		{"12a", false},
		{"-1", false},
		{"١٢", false}, // Arabic-Indic digits
	}
	for _, tt := range tests {
		if got := isAllDigits(tt.in); got != tt.want {
			t.Errorf("isAllDigits(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
