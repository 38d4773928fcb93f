package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/google/uuid"

	"checkmate/internal/config"
)

// FakeTask is a task as stored by FakeServer. Owner is a field the client
// does not know about.
type FakeTask struct {
	GUID         string `json:"guid"`
	Title        string `json:"title"`
	Notes        string `json:"notes"`
	Completed    bool   `json:"completed"`
	CreateTime   string `json:"createTime"`
	CompleteTime string `json:"completeTime"`
	SortPosition int    `json:"sortPosition"`
	Owner        string `json:"owner"`
}

// RecordedRequest is a request received by FakeServer.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// FakeServer emulates the checkmate HTTP API in memory.
type FakeServer struct {
	*httptest.Server

	Move        string
	Grandmaster string

	mu       sync.Mutex
	tasks    []FakeTask
	requests []RecordedRequest
	canned   []cannedResponse
}

type cannedResponse struct {
	status int
	body   string
}

// NewFakeServer starts a FakeServer that accepts the given credentials.
// The server is closed when the test ends.
func NewFakeServer(t testing.TB, move, grandmaster string) *FakeServer {
	t.Helper()
	s := &FakeServer{Move: move, Grandmaster: grandmaster}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Settings returns settings pointing at the server with valid credentials.
func (s *FakeServer) Settings() config.Settings {
	return config.Settings{URL: s.URL, Move: s.Move, Grandmaster: s.Grandmaster}
}

// AddTask stores a task with a generated guid and returns the guid.
func (s *FakeServer) AddTask(title string, completed bool) string {
	id := uuid.NewString()
	s.AddTaskWithID(id, title, completed)
	return id
}

// AddTaskWithID stores a task with a fixed guid.
func (s *FakeServer) AddTaskWithID(id, title string, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, FakeTask{
		GUID:         id,
		Title:        title,
		Completed:    completed,
		SortPosition: len(s.tasks),
		Owner:        s.Grandmaster,
	})
}

// Task returns the stored task with guid id.
func (s *FakeServer) Task(id string) (FakeTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.GUID == id {
			return t, true
		}
	}
	return FakeTask{}, false
}

// Tasks returns a snapshot of the stored tasks.
func (s *FakeServer) Tasks() []FakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FakeTask(nil), s.tasks...)
}

// Respond queues a canned response, served instead of the emulated API for
// the next request.
func (s *FakeServer) Respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned = append(s.canned, cannedResponse{status: status, body: body})
}

// Requests returns all requests received so far.
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *FakeServer) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *FakeServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})

	if len(s.canned) > 0 {
		c := s.canned[0]
		s.canned = s.canned[1:]
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(c.status)
		_, _ = io.WriteString(w, c.body)
		return
	}

	if r.URL.Query().Get("move") != s.Move || r.Header.Get("Grandmaster") != s.Grandmaster {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Invalid credentials"})
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/read-notation.php":
		s.writeTasks(w)
	case r.Method == http.MethodPost && r.URL.Path == "/update-notation.php":
		s.handleUpdate(w, body)
	case r.Method == http.MethodGet && r.URL.Path == "/cleanup-notation.php":
		kept := s.tasks[:0]
		for _, t := range s.tasks {
			if !t.Completed {
				kept = append(kept, t)
			}
		}
		s.tasks = kept
		s.writeTasks(w)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Unknown endpoint"})
	}
}

// handleUpdate applies the fields present in body. Callers hold s.mu.
func (s *FakeServer) handleUpdate(w http.ResponseWriter, body []byte) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	var guid string
	_ = json.Unmarshal(fields["guid"], &guid)

	if guid == "new" {
		t := FakeTask{GUID: uuid.NewString(), SortPosition: len(s.tasks), Owner: s.Grandmaster}
		applyFields(&t, fields)
		s.tasks = append(s.tasks, t)
		s.writeTasks(w)
		return
	}

	for i := range s.tasks {
		if s.tasks[i].GUID != guid {
			continue
		}
		applyFields(&s.tasks[i], fields)
		if s.tasks[i].SortPosition == -1 {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		}
		s.writeTasks(w)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
}

func applyFields(t *FakeTask, fields map[string]json.RawMessage) {
	if v, ok := fields["title"]; ok {
		_ = json.Unmarshal(v, &t.Title)
	}
	if v, ok := fields["notes"]; ok {
		_ = json.Unmarshal(v, &t.Notes)
	}
	if v, ok := fields["completed"]; ok {
		_ = json.Unmarshal(v, &t.Completed)
	}
	if v, ok := fields["createTime"]; ok {
		_ = json.Unmarshal(v, &t.CreateTime)
	}
	if v, ok := fields["completeTime"]; ok {
		_ = json.Unmarshal(v, &t.CompleteTime)
	}
	if v, ok := fields["sortPosition"]; ok {
		_ = json.Unmarshal(v, &t.SortPosition)
	}
}

func (s *FakeServer) writeTasks(w http.ResponseWriter) {
	tasks := s.tasks
	if tasks == nil {
		tasks = []FakeTask{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
