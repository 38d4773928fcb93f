// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task item.
type Task struct {
	ID        string
	Title     string
	Notes     string
	Completed bool

	// Display metadata maintained by the service. Empty or zero when the
	// service does not report it.
	CreateTime   string
	CompleteTime string
	SortPosition int
}

// TaskUpdate is a partial update. Nil fields are not sent and are left
// untouched by the service.
type TaskUpdate struct {
	Title     *string
	Notes     *string
	Completed *bool
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Notes == nil && u.Completed == nil
}
