package checkmate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"checkmate/internal/service"
)

// wireTask is a task as the service encodes it. Pointer fields are required
// and checked by toTask; unknown fields are ignored.
type wireTask struct {
	GUID         *string `json:"guid"`
	Title        *string `json:"title"`
	Notes        *string `json:"notes"`
	Completed    *bool   `json:"completed"`
	CreateTime   string  `json:"createTime"`
	CompleteTime string  `json:"completeTime"`
	SortPosition flexInt `json:"sortPosition"`
}

func (w wireTask) toTask() (service.Task, error) {
	if w.GUID == nil || *w.GUID == "" {
		return service.Task{}, errors.New("task without guid")
	}
	if w.Title == nil {
		return service.Task{}, fmt.Errorf("task %s: missing title", *w.GUID)
	}
	if w.Completed == nil {
		return service.Task{}, fmt.Errorf("task %s: missing completed", *w.GUID)
	}

	t := service.Task{
		ID:           *w.GUID,
		Title:        *w.Title,
		Completed:    *w.Completed,
		CreateTime:   w.CreateTime,
		CompleteTime: w.CompleteTime,
		SortPosition: int(w.SortPosition),
	}
	if w.Notes != nil {
		t.Notes = *w.Notes
	}
	return t, nil
}

// flexInt accepts a JSON number or a quoted number. Anything else decodes to 0.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.Atoi(s)
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}

// tasksResponse is the envelope every endpoint answers with.
type tasksResponse struct {
	Tasks *[]wireTask `json:"tasks"`
}

// errorResponse is the envelope of a failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// createRequest is sent to create a task. The service assigns the guid.
type createRequest struct {
	GUID         string `json:"guid"`
	Title        string `json:"title"`
	Notes        string `json:"notes"`
	Completed    bool   `json:"completed"`
	CreateTime   string `json:"createTime"`
	CompleteTime string `json:"completeTime"`
	SortPosition int    `json:"sortPosition"`
}

// updateRequest carries guid plus only the fields being changed.
type updateRequest struct {
	GUID         string  `json:"guid"`
	Title        *string `json:"title,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Completed    *bool   `json:"completed,omitempty"`
	CompleteTime *string `json:"completeTime,omitempty"`
	SortPosition *int    `json:"sortPosition,omitempty"`
}

// decodeTasks decodes and validates a tasks envelope.
func decodeTasks(op string, data []byte) ([]service.Task, error) {
	var resp tasksResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &service.ProtocolError{Op: op, Err: err}
	}
	if resp.Tasks == nil {
		return nil, &service.ProtocolError{Op: op, Err: errors.New(`missing "tasks"`)}
	}

	tasks := make([]service.Task, 0, len(*resp.Tasks))
	for i, w := range *resp.Tasks {
		t, err := w.toTask()
		if err != nil {
			return nil, &service.ProtocolError{Op: op, Err: fmt.Errorf("tasks[%d]: %w", i, err)}
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// errorMessage extracts the service-provided message from an error body.
func errorMessage(data []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(data, &resp); err == nil && resp.Error != "" {
		return resp.Error
	}
	msg := strings.TrimSpace(string(data))
	if short := truncate(msg, maxErrorBody); short != msg {
		return short + "..."
	}
	return msg
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
