package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tasklist/internal/service"
)

// ErrInvalidForm is returned by Submit when a required field is missing or
// the age is not a whole number. Nothing is sent to the backend.
var ErrInvalidForm = errors.New("invalid form")

// Mode is the form's state: creating a new task or editing an existing one.
type Mode int

const (
	// Creating is the initial mode; submit creates a task.
	Creating Mode = iota

	// Editing means an edit target is set; submit updates it.
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "creating"
}

// SubmitLabel is the caption of the submit button in this mode.
func (m Mode) SubmitLabel() string {
	if m == Editing {
		return "Update Task"
	}
	return "Add Task"
}

// CanCancel reports whether a cancel action is offered.
func (m Mode) CanCancel() bool { return m == Editing }

// FormState is the create/edit input buffer.
type FormState struct {
	Name string
	Age  string // raw input; converted at submit

	// EditTarget is the ID of the task being edited, empty when creating.
	EditTarget string
}

// Editing reports whether an edit target is set.
func (f FormState) Editing() bool { return f.EditTarget != "" }

// Mode returns Creating or Editing.
func (f FormState) Mode() Mode {
	if f.Editing() {
		return Editing
	}
	return Creating
}

// Empty reports whether the form holds no input and no edit target.
func (f FormState) Empty() bool { return f == FormState{} }

// Input validates the form and converts it to a request body.
func (f FormState) Input() (service.TaskInput, error) {
	if strings.TrimSpace(f.Name) == "" {
		return service.TaskInput{}, fmt.Errorf("%w: name required", ErrInvalidForm)
	}
	raw := strings.TrimSpace(f.Age)
	if raw == "" {
		return service.TaskInput{}, fmt.Errorf("%w: age required", ErrInvalidForm)
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		return service.TaskInput{}, fmt.Errorf("%w: age must be a whole number: %s", ErrInvalidForm, raw)
	}
	return service.TaskInput{Name: f.Name, Age: age}, nil
}
