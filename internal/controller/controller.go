// Package controller owns the task list UI state and keeps it in step with
// the backend.
//
// The task list is a snapshot: it is replaced in full by every successful
// fetch and never patched locally. Every mutation is followed by a fetch.
// Fetches are numbered when issued; a completion older than the newest
// applied fetch is dropped, so a slow early response cannot overwrite a
// later one.
package controller

import (
	"context"
	"strconv"
	"sync"

	"github.com/go-logr/logr"

	"tasklist/internal/service"
)

// User-visible error indicator texts.
const (
	MsgFetchFailed  = "Failed to fetch tasks"
	MsgAddFailed    = "Failed to add task"
	MsgUpdateFailed = "Failed to update task"
	MsgDeleteFailed = "Failed to delete task"
)

// Snapshot is a read-only projection of the controller state for rendering.
type Snapshot struct {
	Tasks   []service.Task
	Form    FormState
	Mode    Mode
	Error   string // empty when there is nothing to report
	Err     error  // the failure behind Error
	Loading bool   // a list fetch is in flight
}

// Controller is the task list controller. It is safe for concurrent use;
// backend calls are made without holding the lock.
type Controller struct {
	svc service.Service
	log logr.Logger

	mu       sync.Mutex
	tasks    []service.Task
	form     FormState
	errMsg   string
	err      error
	issued   uint64 // sequence of the last fetch started
	applied  uint64 // sequence of the newest fetch whose result was kept
	inFlight int
}

// New creates a controller in Creating mode with an empty task list.
func New(svc service.Service, log logr.Logger) *Controller {
	return &Controller{
		svc: svc,
		log: log.WithName("controller"),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks := make([]service.Task, len(c.tasks))
	copy(tasks, c.tasks)
	return Snapshot{
		Tasks:   tasks,
		Form:    c.form,
		Mode:    c.form.Mode(),
		Error:   c.errMsg,
		Err:     c.err,
		Loading: c.inFlight > 0,
	}
}

// FetchAll replaces the task list with the backend's collection.
// On failure the previous list is kept and the error indicator is set.
// A successful fetch clears the error indicator.
func (c *Controller) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.inFlight++
	c.mu.Unlock()

	tasks, err := c.svc.ListTasks(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--

	if seq < c.applied {
		c.log.V(1).Info("discarding out-of-order fetch", "seq", seq, "applied", c.applied)
		return err
	}
	c.applied = seq

	if err != nil {
		c.failLocked(MsgFetchFailed, err)
		return err
	}
	c.tasks = tasks
	c.errMsg = ""
	c.err = nil
	c.log.V(1).Info("task list replaced", "seq", seq, "count", len(tasks))
	return nil
}

// Submit creates a task from the form, or updates the edit target when one
// is set. On success the form is reset to Creating and the list is
// refetched. On failure the form is left as it was for resubmission.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	in, err := form.Input()
	if err != nil {
		return err
	}

	if form.Editing() {
		if err := c.svc.UpdateTask(ctx, form.EditTarget, in); err != nil {
			c.fail(MsgUpdateFailed, err, "id", form.EditTarget)
			return err
		}
	} else {
		if err := c.svc.CreateTask(ctx, in); err != nil {
			c.fail(MsgAddFailed, err)
			return err
		}
	}

	c.mu.Lock()
	c.form = FormState{}
	c.mu.Unlock()

	return c.FetchAll(ctx)
}

// BeginEdit loads task into the form and makes it the edit target.
func (c *Controller) BeginEdit(task service.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = FormState{
		Name:       task.Name,
		Age:        strconv.Itoa(task.Age),
		EditTarget: task.ID,
	}
}

// CancelEdit clears the edit target and the form.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = FormState{}
}

// SetName sets the form's name field.
func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Name = name
}

// SetAge sets the form's age field.
func (c *Controller) SetAge(age string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Age = age
}

// Remove deletes the task with the given ID after confirm agrees.
// It reports whether a delete was sent and succeeded. A declined (or nil)
// confirmer makes no backend call.
func (c *Controller) Remove(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		c.log.V(1).Info("delete declined", "id", id)
		return false, nil
	}

	if err := c.svc.DeleteTask(ctx, id); err != nil {
		c.fail(MsgDeleteFailed, err, "id", id)
		return false, err
	}
	return true, c.FetchAll(ctx)
}

func (c *Controller) fail(msg string, err error, kv ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failLocked(msg, err, kv...)
}

// failLocked is the single reporting path for backend failures.
func (c *Controller) failLocked(msg string, err error, kv ...any) {
	c.log.Error(err, msg, append(kv, "kind", service.KindOf(err).String())...)
	c.errMsg = msg
	c.err = err
}
