package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"tasklist/internal/controller"
	"tasklist/internal/service"
	"tasklist/internal/testutil"
)

func newModel(t *testing.T, svc *testutil.FakeService) Model {
	t.Helper()
	ctl := controller.New(svc, logr.Discard())
	m := New(context.Background(), ctl)
	// Load the initial list the way Init would.
	return step(t, m, m.fetch())
}

// step runs cmd synchronously and feeds its message back to the model.
func step(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = press(m, string(r))
	}
	return m
}

func seeded() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Alice", 30)
	svc.AddTask("2", "Bob", 25)
	return svc
}

func TestInitialFetchRendersList(t *testing.T) {
	m := newModel(t, seeded())

	view := m.View()
	for _, want := range []string{"Todo List", "Add Task", "Alice", "30 years old", "Bob", "25 years old"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Cancel") {
		t.Errorf("expected no cancel button while creating, got:\n%s", view)
	}
}

func TestAddTask(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newModel(t, svc)

	m, _ = press(m, "a")
	m = typeText(m, "Carol")
	m, _ = press(m, "tab")
	m = typeText(m, "41")
	m, cmd := press(m, "enter")
	m = step(t, m, cmd)

	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Name != "Carol" || tasks[0].Age != 41 {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if m.name.Value() != "" || m.age.Value() != "" {
		t.Errorf("expected inputs cleared, got %q/%q", m.name.Value(), m.age.Value())
	}
	if m.focus != focusList {
		t.Errorf("expected focus back on list, got %d", m.focus)
	}
	if !strings.Contains(m.View(), "Carol") {
		t.Errorf("expected new task in view, got:\n%s", m.View())
	}
}

func TestAddTask_InvalidFormShowsStatus(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newModel(t, svc)
	svc.ResetCalls()

	m, _ = press(m, "a")
	m = typeText(m, "Carol")
	m, cmd := press(m, "enter")
	m = step(t, m, cmd)

	if len(svc.Calls()) != 0 {
		t.Errorf("expected no backend calls, got %v", svc.Calls())
	}
	if !strings.Contains(m.status, "age required") {
		t.Errorf("expected age required status, got %q", m.status)
	}
	if m.name.Value() != "Carol" {
		t.Errorf("expected name kept, got %q", m.name.Value())
	}
}

func TestEditTask(t *testing.T) {
	svc := seeded()
	m := newModel(t, svc)

	m, _ = press(m, "j", "e")
	if m.name.Value() != "Bob" || m.age.Value() != "25" {
		t.Fatalf("expected form prefilled with Bob/25, got %q/%q", m.name.Value(), m.age.Value())
	}
	view := m.View()
	if !strings.Contains(view, "Update Task") || !strings.Contains(view, "Cancel") {
		t.Errorf("expected update and cancel buttons, got:\n%s", view)
	}

	m, _ = press(m, "tab", "backspace", "backspace")
	m = typeText(m, "26")
	m, cmd := press(m, "enter")
	m = step(t, m, cmd)

	tasks := svc.Tasks()
	if tasks[1].Age != 26 || tasks[1].Name != "Bob" {
		t.Errorf("expected Bob aged 26, got %+v", tasks[1])
	}
	if m.snap.Mode != controller.Creating {
		t.Errorf("expected creating mode after update, got %v", m.snap.Mode)
	}
}

func TestEditCancel(t *testing.T) {
	svc := seeded()
	m := newModel(t, svc)
	svc.ResetCalls()

	m, _ = press(m, "e", "esc")

	if m.snap.Mode != controller.Creating {
		t.Errorf("expected creating mode, got %v", m.snap.Mode)
	}
	if m.name.Value() != "" {
		t.Errorf("expected name cleared, got %q", m.name.Value())
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no backend calls, got %v", svc.Calls())
	}
}

func TestDeleteConfirmed(t *testing.T) {
	svc := seeded()
	m := newModel(t, svc)

	m, _ = press(m, "d")
	if m.pendingDel == nil || m.pendingDel.ID != "1" {
		t.Fatalf("expected pending delete of task 1, got %+v", m.pendingDel)
	}
	m, cmd := press(m, "y")
	m = step(t, m, cmd)

	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "2" {
		t.Errorf("expected only task 2 left, got %+v", tasks)
	}
	if m.status != "Task deleted" {
		t.Errorf("expected %q, got %q", "Task deleted", m.status)
	}
}

func TestDeleteDeclined(t *testing.T) {
	svc := seeded()
	m := newModel(t, svc)
	svc.ResetCalls()

	m, cmd := press(m, "d", "n")
	m = step(t, m, cmd)

	if len(svc.Calls()) != 0 {
		t.Errorf("expected no backend calls, got %v", svc.Calls())
	}
	if len(svc.Tasks()) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(svc.Tasks()))
	}
	if m.status != "Delete cancelled" {
		t.Errorf("expected %q, got %q", "Delete cancelled", m.status)
	}
}

func TestFetchFailureShowsError(t *testing.T) {
	svc := seeded()
	svc.ListTasksErr = errors.New("connection refused")
	m := newModel(t, svc)

	if !strings.Contains(m.View(), controller.MsgFetchFailed) {
		t.Errorf("expected %q in view, got:\n%s", controller.MsgFetchFailed, m.View())
	}

	svc.ListTasksErr = nil
	m, cmd := press(m, "r")
	m = step(t, m, cmd)
	if strings.Contains(m.View(), controller.MsgFetchFailed) {
		t.Errorf("expected error cleared after refresh, got:\n%s", m.View())
	}
}

func TestCursorClamped(t *testing.T) {
	m := newModel(t, seeded())

	m, _ = press(m, "j", "j", "j")
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}
	m, _ = press(m, "k", "k", "k")
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, seeded())
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestLoadingIndicatorFollowsController(t *testing.T) {
	svc := seeded()
	m := newModel(t, svc)

	started := make(chan struct{})
	release := make(chan struct{})
	svc.ListHook = func(call int) error {
		if call == 2 {
			close(started)
			<-release
		}
		return nil
	}

	m, cmd := press(m, "r")
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	<-started

	next, _ := m.Update(m.spinner.Tick())
	m = next.(Model)
	view := m.View()
	if !strings.Contains(view, "Loading tasks...") {
		t.Errorf("expected loading indicator while fetching, got:\n%s", view)
	}
	if !strings.Contains(view, "Alice") {
		t.Errorf("expected previous list kept while fetching, got:\n%s", view)
	}

	close(release)
	next, _ = m.Update(<-done)
	m = next.(Model)
	if strings.Contains(m.View(), "Loading tasks...") {
		t.Errorf("expected loading indicator gone, got:\n%s", m.View())
	}
}

func TestCursorClampedWhenListShrinks(t *testing.T) {
	svc := seeded()
	m := newModel(t, svc)
	m, _ = press(m, "j")

	// Another fetch shrinks the list before this model hears about it.
	svc.SetTasks([]service.Task{{ID: "1", Name: "Alice", Age: 30}})
	if err := m.ctl.FetchAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, _ = press(m, "a", "x", "esc", "d")
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
	if m.pendingDel == nil || m.pendingDel.ID != "1" {
		t.Errorf("expected pending delete of task 1, got %+v", m.pendingDel)
	}
}
