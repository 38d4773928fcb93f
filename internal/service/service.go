package service

import "context"

// Service defines the interface for task backend operations.
// All checkmate API calls go through this interface.
// Commands never import the HTTP backend directly.
type Service interface {
	// ListTasks returns the full task collection in service order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new, uncompleted task.
	CreateTask(ctx context.Context, title, notes string) (Task, error)

	// UpdateTask sends only the non-nil fields of upd for the task with id.
	// A response that omits notes leaves Task.Notes empty; that does not
	// mean the notes were cleared.
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (Task, error)

	// DeleteTask removes the task with id.
	DeleteTask(ctx context.Context, id string) error

	// SetCompleted sets the completion flag of the task with id.
	SetCompleted(ctx context.Context, id string, completed bool) (Task, error)

	// Cleanup removes all completed tasks and returns what remains.
	Cleanup(ctx context.Context) ([]Task, error)
}
