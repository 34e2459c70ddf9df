// Package todoapitest provides an in-memory todo service for tests.
package todoapitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/five82/jot/internal/todoapi"
)

// Request records a call received by the Server.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// Server answers the todo API the way the production store does: an empty
// collection is reported as {"msg": ...}, update and delete answer
// {"success": true}.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	next     int
	todos    []todoapi.Todo
	failures map[string]int
	requests []Request
	inserted bool
}

// NewServer starts a Server seeded with todos. It is closed with the test.
func NewServer(t testing.TB, seed ...todoapi.Todo) *Server {
	t.Helper()
	s := &Server{next: 1, failures: make(map[string]int)}
	for _, todo := range seed {
		if todo.ID == "" {
			todo.ID = s.nextID()
		}
		s.todos = append(s.todos, todo)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// AnswerInsertResult makes create answer with {"InsertedID": id} instead of
// the stored document.
func (s *Server) AnswerInsertResult() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = true
}

// FailNext makes the next request with method answer status.
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = status
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests used method.
func (s *Server) Count(method string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// Todos returns the stored todos in insertion order.
func (s *Server) Todos() []todoapi.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]todoapi.Todo(nil), s.todos...)
}

func (s *Server) nextID() string {
	id := strconv.Itoa(s.next)
	s.next++
	return id
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, Request{
		Method:      r.Method,
		Path:        r.URL.EscapedPath(),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})

	if status, ok := s.failures[r.Method]; ok {
		delete(s.failures, r.Method)
		writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
		return
	}

	if !strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/")

	switch {
	case r.Method == http.MethodGet && id == "":
		if len(s.todos) == 0 {
			writeJSON(w, http.StatusOK, map[string]string{"msg": "No todos found"})
			return
		}
		writeJSON(w, http.StatusOK, s.todos)

	case r.Method == http.MethodPost && id == "":
		var todo todoapi.Todo
		if err := json.Unmarshal(body, &todo); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid body"})
			return
		}
		if todo.Body == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Todo body cannot be empty."})
			return
		}
		todo.ID = s.nextID()
		s.todos = append(s.todos, todo)
		if s.inserted {
			writeJSON(w, http.StatusCreated, map[string]string{"InsertedID": todo.ID})
			return
		}
		writeJSON(w, http.StatusCreated, todo)

	case r.Method == http.MethodPatch && id != "":
		var todo todoapi.Todo
		if err := json.Unmarshal(body, &todo); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid body"})
			return
		}
		idx := s.indexOf(id)
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Invalid ID"})
			return
		}
		s.todos[idx].Body = todo.Body
		s.todos[idx].Completed = todo.Completed
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	case r.Method == http.MethodDelete && id != "":
		idx := s.indexOf(id)
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Invalid ID"})
			return
		}
		s.todos = append(s.todos[:idx], s.todos[idx+1:]...)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) indexOf(id string) int {
	for i, todo := range s.todos {
		if todo.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
