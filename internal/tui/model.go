// Package tui provides the interactive task form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/controller"
	"tasklist/internal/service"
)

type focus int

const (
	focusList focus = iota
	focusName
	focusAge
)

// syncedMsg reports that a controller call finished.
type syncedMsg struct {
	op     string // "fetch", "submit", "remove"
	err    error
	status string
}

// Model is the Bubble Tea model for the task form and list.
// All task state lives in the controller; the model keeps only what the
// screen needs (cursor, focus, pending delete).
type Model struct {
	ctx  context.Context
	ctl  *controller.Controller
	snap controller.Snapshot

	name    textinput.Model
	age     textinput.Model
	spinner spinner.Model

	focus      focus
	cursor     int
	pendingDel *service.Task
	status     string
}

// New creates the model. ctx bounds every backend call the UI makes.
func New(ctx context.Context, ctl *controller.Controller) Model {
	name := textinput.New()
	name.Placeholder = "Enter task name"
	name.CharLimit = 256
	name.Width = 40

	age := textinput.New()
	age.Placeholder = "Enter age"
	age.CharLimit = 4
	age.Width = 10

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		ctx:     ctx,
		ctl:     ctl,
		snap:    ctl.Snapshot(),
		name:    name,
		age:     age,
		spinner: s,
		status:  "Press 'a' to add, 'e' to edit, 'd' to delete.",
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, ctl *controller.Controller) error {
	p := tea.NewProgram(New(ctx, ctl), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.pendingDel != nil {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.focus != focusList {
			return m.updateForm(msg)
		}
		return m.updateList(msg.String())

	case tea.WindowSizeMsg:
		m.name.Width = max(msg.Width-12, 10)
		return m, nil

	case spinner.TickMsg:
		// Ticks keep the loading indicator current while a call runs.
		m = m.refresh()
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case syncedMsg:
		return m.synced(msg), nil
	}
	return m, nil
}

func (m Model) synced(msg syncedMsg) Model {
	m = m.refresh()
	m.name.SetValue(m.snap.Form.Name)
	m.age.SetValue(m.snap.Form.Age)

	switch {
	case msg.err == nil:
		m.status = msg.status
		if msg.op == "submit" {
			m = m.focusOn(focusList)
		}
	case errors.Is(msg.err, controller.ErrInvalidForm):
		m.status = msg.err.Error()
	default:
		// The controller's error indicator carries the message.
		m.status = ""
	}
	return m
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(m.snap.Tasks))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(m.snap.Tasks))
	case "r":
		return m, m.fetch()
	case "a":
		m.status = "Type a name and age, enter to save, esc to leave"
		return m.focusCmd(focusName)
	case "e":
		task, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		m.ctl.BeginEdit(task)
		m = m.refresh()
		m.name.SetValue(m.snap.Form.Name)
		m.age.SetValue(m.snap.Form.Age)
		m.status = fmt.Sprintf("Editing %q: enter to update, esc to cancel", task.Name)
		return m.focusCmd(focusName)
	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pendingDel = &task
		m.status = fmt.Sprintf("Delete %q? y/n", task.Name)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctl.CancelEdit()
		m = m.refresh()
		m.name.SetValue("")
		m.age.SetValue("")
		m.status = "Cancelled"
		return m.focusOn(focusList), nil
	case "tab", "shift+tab":
		if m.focus == focusName {
			return m.focusCmd(focusAge)
		}
		return m.focusCmd(focusName)
	case "enter":
		return m, m.submit()
	}

	var cmd tea.Cmd
	if m.focus == focusName {
		m.name, cmd = m.name.Update(msg)
		m.ctl.SetName(m.name.Value())
	} else {
		m.age, cmd = m.age.Update(msg)
		m.ctl.SetAge(m.age.Value())
	}
	return m.refresh(), cmd
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	var yes bool
	switch key {
	case "y", "Y":
		yes = true
	case "n", "N", "esc":
		yes = false
	default:
		return m, nil
	}
	task := *m.pendingDel
	m.pendingDel = nil
	return m, m.remove(task, yes)
}

// refresh reloads the snapshot and keeps the cursor inside the list.
func (m Model) refresh() Model {
	m.snap = m.ctl.Snapshot()
	m.cursor = clampCursor(m.cursor, len(m.snap.Tasks))
	return m
}

func (m Model) fetch() tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		err := ctl.FetchAll(ctx)
		return syncedMsg{op: "fetch", err: err}
	}
}

func (m Model) submit() tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	status := "Task added"
	if m.snap.Mode == controller.Editing {
		status = "Task updated"
	}
	return func() tea.Msg {
		err := ctl.Submit(ctx)
		return syncedMsg{op: "submit", err: err, status: status}
	}
}

func (m Model) remove(task service.Task, yes bool) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg {
		removed, err := ctl.Remove(ctx, task.ID, controller.Answer(yes))
		status := "Delete cancelled"
		if removed {
			status = "Task deleted"
		}
		return syncedMsg{op: "remove", err: err, status: status}
	}
}

func (m Model) focusOn(f focus) Model {
	m.focus = f
	m.name.Blur()
	m.age.Blur()
	switch f {
	case focusName:
		m.name.Focus()
	case focusAge:
		m.age.Focus()
	}
	return m
}

func (m Model) focusCmd(f focus) (tea.Model, tea.Cmd) {
	m = m.focusOn(f)
	return m, textinput.Blink
}

func (m Model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Tasks) {
		return service.Task{}, false
	}
	return m.snap.Tasks[m.cursor], true
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo List"))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Name"))
	b.WriteString(m.name.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Age"))
	b.WriteString(m.age.View())
	b.WriteString("\n\n")

	b.WriteString(buttonStyle.Render(m.snap.Mode.SubmitLabel()))
	if m.snap.Mode.CanCancel() {
		b.WriteString(" ")
		b.WriteString(cancelStyle.Render("Cancel"))
	}
	b.WriteString("\n\n")

	if m.snap.Loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading tasks...\n")
	}
	if !m.snap.Loading || len(m.snap.Tasks) > 0 {
		b.WriteString(m.renderTaskList())
	}

	if m.snap.Error != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.snap.Error))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderTaskList() string {
	if len(m.snap.Tasks) == 0 {
		return "No tasks yet. Press 'a' to add one.\n"
	}
	var b strings.Builder
	for i, t := range m.snap.Tasks {
		cursor := "  "
		line := nameStyle.Render(t.Name) + fmt.Sprintf(" - %d years old", t.Age)
		if i == m.cursor && m.focus == focusList {
			cursor = selectedStyle.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpLine() string {
	if m.focus != focusList {
		return "tab next field • enter save • esc cancel"
	}
	return "j/k move • a add • e edit • d delete • r refresh • q quit"
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
