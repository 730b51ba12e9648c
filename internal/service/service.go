// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All REST calls go through this interface; the controller and the
// front ends never build requests themselves.
type Service interface {
	// ListTasks returns the full task collection in backend order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new task.
	CreateTask(ctx context.Context, in TaskInput) error

	// UpdateTask replaces name and age of the task with the given ID.
	UpdateTask(ctx context.Context, id string, in TaskInput) error

	// DeleteTask deletes the task with the given ID.
	DeleteTask(ctx context.Context, id string) error
}
