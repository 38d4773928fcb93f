// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"checkmate/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int
	calls  []string

	// Error injection for testing
	ListTasksErr    error
	CreateTaskErr   error
	UpdateTaskErr   error
	DeleteTaskErr   error
	SetCompletedErr error
	CleanupErr      error
}

// NewFakeService creates a new, empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask adds an open task with the given identifier.
func (f *FakeService) AddTask(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, SortPosition: len(f.tasks)})
}

// AddCompletedTask adds a completed task with the given identifier.
func (f *FakeService) AddCompletedTask(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:           id,
		Title:        title,
		Completed:    true,
		CompleteTime: "January 02, 2006 15:04:05",
		SortPosition: len(f.tasks),
	})
}

// Task returns the stored task with id.
func (f *FakeService) Task(id string) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Calls returns the names of the Service methods called so far, in order.
func (f *FakeService) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.calls...)
}

func (f *FakeService) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

// notFound mimics the service's response to an unknown identifier.
func notFound(op, id string) error {
	return &service.ServiceError{Op: op, Status: 404, Message: fmt.Sprintf("task %s not found", id)}
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title, notes string) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	t := service.Task{
		ID:           fmt.Sprintf("new%05d", f.nextID),
		Title:        title,
		Notes:        notes,
		SortPosition: len(f.tasks),
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, upd service.TaskUpdate) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if upd.Title != nil {
			f.tasks[i].Title = *upd.Title
		}
		if upd.Notes != nil {
			f.tasks[i].Notes = *upd.Notes
		}
		if upd.Completed != nil {
			f.tasks[i].Completed = *upd.Completed
		}
		return f.tasks[i], nil
	}
	return service.Task{}, notFound("update task", id)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return notFound("delete task", id)
}

// SetCompleted implements service.Service.
func (f *FakeService) SetCompleted(ctx context.Context, id string, completed bool) (service.Task, error) {
	f.record("SetCompleted")
	if f.SetCompletedErr != nil {
		return service.Task{}, f.SetCompletedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = completed
			return f.tasks[i], nil
		}
	}
	return service.Task{}, notFound("set completed", id)
}

// Cleanup implements service.Service.
func (f *FakeService) Cleanup(ctx context.Context) ([]service.Task, error) {
	f.record("Cleanup")
	if f.CleanupErr != nil {
		return nil, f.CleanupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	result := make([]service.Task, len(kept))
	copy(result, kept)
	return result, nil
}
