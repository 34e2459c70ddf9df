package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/jot/internal/todoapi"
)

// ErrEmptyDraft is returned by ConfirmEdit when the draft is blank. It is a
// local failure and never recorded as the session's last error.
var ErrEmptyDraft = errors.New("cannot update with an empty todo")

// Input is the text field new todos are read from.
type Input interface {
	Value() string
	Reset()
}

// State is a point-in-time copy of the session.
type State struct {
	Items         []todoapi.Todo
	Editing       bool
	EditingID     string
	Draft         string
	LastError     string
	LastRefreshed time.Time
}

// IsEditing reports whether the todo with id is the current edit target.
func (s State) IsEditing(id string) bool {
	return s.Editing && s.EditingID == id
}

// Item returns the todo with id from the last refresh.
func (s State) Item(id string) (todoapi.Todo, bool) {
	for _, todo := range s.Items {
		if todo.ID == id {
			return todo, true
		}
	}
	return todoapi.Todo{}, false
}

// Options configure a Session.
type Options struct {
	Logger *zap.Logger
}

// Session owns the todo list and edit state of one user. Operations that talk
// to the service are serialized; local edit transitions never wait on the
// network.
type Session struct {
	remote todoapi.Service
	logger *zap.Logger

	opMu sync.Mutex

	mu    sync.RWMutex
	state State
}

// New creates a Session backed by remote.
func New(remote todoapi.Service, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{remote: remote, logger: logger.Named("session")}
}

// Start loads the initial list.
func (s *Session) Start(ctx context.Context) {
	s.Refresh(ctx)
}

// Refresh replaces the items with a fresh list from the service.
func (s *Session) Refresh(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.refresh(ctx)
}

// SubmitNew creates a todo from the input's text. On success the input is
// reset and the list refreshed; on failure the input is left as typed.
func (s *Session) SubmitNew(ctx context.Context, input Input) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	var body string
	if input != nil {
		body = input.Value()
	}
	todo := todoapi.Todo{Body: body}
	if _, err := s.remote.Create(ctx, &todo); err != nil {
		s.fail("create", err)
		return
	}
	if input != nil {
		input.Reset()
	}
	s.refresh(ctx)
}

// BeginEdit makes todo the edit target with its body as draft. Any draft in
// progress is discarded.
func (s *Session) BeginEdit(todo todoapi.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Editing = true
	s.state.EditingID = todo.ID
	s.state.Draft = todo.Body
}

// SetDraft replaces the draft text. It does nothing when no edit is active.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Editing {
		s.state.Draft = text
	}
}

// CancelEdit leaves edit mode and discards the draft.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearEdit()
}

// ConfirmEdit saves the draft as todo's body. Confirming always marks the
// todo as not completed.
//
// A blank draft returns ErrEmptyDraft without contacting the service. Service
// failures are recorded as the last error and keep the edit in progress.
func (s *Session) ConfirmEdit(ctx context.Context, todo todoapi.Todo) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	draft := s.state.Draft
	s.mu.RUnlock()
	if strings.TrimSpace(draft) == "" {
		return ErrEmptyDraft
	}

	updated := todo
	updated.Body = draft
	updated.Completed = false
	if _, err := s.remote.Update(ctx, &updated); err != nil {
		s.fail("update", err)
		return nil
	}
	s.refresh(ctx)

	s.mu.Lock()
	s.clearEdit()
	s.mu.Unlock()
	return nil
}

// ToggleComplete flips todo's completion on the service.
func (s *Session) ToggleComplete(ctx context.Context, todo todoapi.Todo) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	updated := todo
	updated.Completed = !todo.Completed
	if _, err := s.remote.Update(ctx, &updated); err != nil {
		s.fail("toggle", err)
		return
	}
	s.refresh(ctx)
}

// Delete removes todo from the service. The edit state is left alone even
// when todo is being edited.
func (s *Session) Delete(ctx context.Context, todo todoapi.Todo) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if _, err := s.remote.Delete(ctx, &todo); err != nil {
		s.fail("delete", err)
		return
	}
	s.refresh(ctx)
}

// DismissError clears the last error.
func (s *Session) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = ""
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Items = cloneItems(s.state.Items)
	return snap
}

// refresh must be called with opMu held.
func (s *Session) refresh(ctx context.Context) {
	todos, err := s.remote.List(ctx)
	if err != nil {
		s.fail("list", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = cloneItems(todos)
	s.state.LastRefreshed = time.Now()
}

func (s *Session) fail(op string, err error) {
	s.logger.Warn("todo operation failed", zap.String("op", op), zap.Error(err))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = err.Error()
}

func (s *Session) clearEdit() {
	s.state.Editing = false
	s.state.EditingID = ""
	s.state.Draft = ""
}

func cloneItems(items []todoapi.Todo) []todoapi.Todo {
	if len(items) == 0 {
		return nil
	}
	dup := make([]todoapi.Todo, len(items))
	copy(dup, items)
	return dup
}
