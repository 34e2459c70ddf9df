package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/five82/jot/internal/todoapi"
)

// fakeService is a scripted todoapi.Service.
type fakeService struct {
	mu      sync.Mutex
	todos   []todoapi.Todo
	nextID  int
	calls   []string
	updates []todoapi.Todo

	createErr error
	updateErr error
	deleteErr error
	listErr   error

	createHook func()
}

func newFake(todos ...todoapi.Todo) *fakeService {
	return &fakeService{todos: todos, nextID: len(todos)}
}

func (f *fakeService) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeService) List(ctx context.Context) ([]todoapi.Todo, error) {
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]todoapi.Todo(nil), f.todos...), nil
}

func (f *fakeService) Create(ctx context.Context, todo *todoapi.Todo) (todoapi.Todo, error) {
	f.record("create")
	if f.createHook != nil {
		f.createHook()
	}
	if f.createErr != nil {
		return todoapi.Todo{}, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *todo
	stored.ID = strconv.Itoa(f.nextID)
	f.todos = append(f.todos, stored)
	return stored, nil
}

func (f *fakeService) Update(ctx context.Context, todo *todoapi.Todo) (todoapi.Todo, error) {
	f.record("update")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, *todo)
	if f.updateErr != nil {
		return todoapi.Todo{}, f.updateErr
	}
	for i := range f.todos {
		if f.todos[i].ID == todo.ID {
			f.todos[i] = *todo
		}
	}
	return *todo, nil
}

func (f *fakeService) Delete(ctx context.Context, todo *todoapi.Todo) (todoapi.Ack, error) {
	f.record("delete")
	if f.deleteErr != nil {
		return todoapi.Ack{}, f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.todos {
		if f.todos[i].ID == todo.ID {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			break
		}
	}
	return todoapi.Ack{Success: true}, nil
}

type fakeInput struct {
	value  string
	resets int
}

func (i *fakeInput) Value() string { return i.value }
func (i *fakeInput) Reset()        { i.value = ""; i.resets++ }

var milk = todoapi.Todo{ID: "1", Body: "Buy milk"}

func started(t *testing.T, svc *fakeService) *Session {
	t.Helper()
	s := New(svc, Options{})
	s.Start(context.Background())
	return s
}

func TestSession_StartLoadsItems(t *testing.T) {
	svc := newFake(milk)
	before := time.Now()
	s := started(t, svc)

	snap := s.Snapshot()
	require.Equal(t, []todoapi.Todo{milk}, snap.Items)
	require.False(t, snap.LastRefreshed.Before(before))
	require.Equal(t, []string{"list"}, svc.Calls())
}

func TestSession_SubmitNewCreatesThenRefreshes(t *testing.T) {
	svc := newFake()
	s := started(t, svc)
	input := &fakeInput{value: "Buy milk"}

	s.SubmitNew(context.Background(), input)

	snap := s.Snapshot()
	require.Equal(t, []todoapi.Todo{{ID: "1", Body: "Buy milk", Completed: false}}, snap.Items)
	require.Empty(t, input.value)
	require.Equal(t, 1, input.resets)
	require.Empty(t, snap.LastError)
	require.Equal(t, []string{"list", "create", "list"}, svc.Calls())
}

func TestSession_SubmitNewFailureKeepsInput(t *testing.T) {
	svc := newFake(milk)
	svc.createErr = errors.New("create todo: service returned status 500")
	s := started(t, svc)
	input := &fakeInput{value: "Walk dog"}

	s.SubmitNew(context.Background(), input)

	snap := s.Snapshot()
	require.Equal(t, "create todo: service returned status 500", snap.LastError)
	require.Equal(t, "Walk dog", input.value)
	require.Zero(t, input.resets)
	require.Equal(t, []todoapi.Todo{milk}, snap.Items)
	require.Equal(t, []string{"list", "create"}, svc.Calls())
}

func TestSession_BeginEditLastSelectWins(t *testing.T) {
	other := todoapi.Todo{ID: "2", Body: "Walk dog"}
	s := started(t, newFake(milk, other))

	s.BeginEdit(milk)
	s.SetDraft("Buy oat milk")
	snap := s.Snapshot()
	require.True(t, snap.IsEditing("1"))
	require.Equal(t, "Buy oat milk", snap.Draft)

	s.BeginEdit(other)
	snap = s.Snapshot()
	require.True(t, snap.IsEditing("2"))
	require.False(t, snap.IsEditing("1"))
	require.Equal(t, "Walk dog", snap.Draft)
}

func TestSession_CancelEditDiscardsDraftWithoutNetwork(t *testing.T) {
	svc := newFake(milk)
	s := started(t, svc)

	s.BeginEdit(milk)
	s.SetDraft("changed")
	s.CancelEdit()

	snap := s.Snapshot()
	require.False(t, snap.Editing)
	require.Empty(t, snap.EditingID)
	require.Empty(t, snap.Draft)
	require.Equal(t, []string{"list"}, svc.Calls())
}

func TestSession_SetDraftIgnoredWhenIdle(t *testing.T) {
	s := started(t, newFake(milk))
	s.SetDraft("stray")
	require.Empty(t, s.Snapshot().Draft)
}

func TestSession_ConfirmEditResetsCompletion(t *testing.T) {
	done := todoapi.Todo{ID: "1", Body: "Buy milk", Completed: true}
	svc := newFake(done)
	s := started(t, svc)

	s.BeginEdit(done)
	s.SetDraft("Buy oat milk")
	require.NoError(t, s.ConfirmEdit(context.Background(), done))

	require.Equal(t, []todoapi.Todo{{ID: "1", Body: "Buy oat milk", Completed: false}}, svc.updates)
	snap := s.Snapshot()
	require.False(t, snap.Editing)
	require.Empty(t, snap.Draft)
	require.Equal(t, []todoapi.Todo{{ID: "1", Body: "Buy oat milk"}}, snap.Items)
	require.Equal(t, []string{"list", "update", "list"}, svc.Calls())
}

func TestSession_ConfirmEditEmptyDraftIsLocal(t *testing.T) {
	svc := newFake(milk)
	s := started(t, svc)

	s.BeginEdit(milk)
	s.SetDraft("   ")
	err := s.ConfirmEdit(context.Background(), milk)
	require.ErrorIs(t, err, ErrEmptyDraft)

	snap := s.Snapshot()
	require.Empty(t, snap.LastError)
	require.True(t, snap.IsEditing("1"))
	require.Equal(t, "   ", snap.Draft)
	require.Equal(t, []todoapi.Todo{milk}, snap.Items)
	require.Equal(t, []string{"list"}, svc.Calls())
}

func TestSession_ConfirmEditFailureStaysEditing(t *testing.T) {
	svc := newFake(milk)
	svc.updateErr = errors.New("update todo: could not reach the todo service")
	s := started(t, svc)

	s.BeginEdit(milk)
	s.SetDraft("Buy oat milk")
	require.NoError(t, s.ConfirmEdit(context.Background(), milk))

	snap := s.Snapshot()
	require.Equal(t, "update todo: could not reach the todo service", snap.LastError)
	require.True(t, snap.IsEditing("1"))
	require.Equal(t, "Buy oat milk", snap.Draft)
	require.Equal(t, []todoapi.Todo{milk}, snap.Items)
}

func TestSession_ToggleComplete(t *testing.T) {
	svc := newFake(milk)
	s := started(t, svc)
	s.BeginEdit(milk)

	s.ToggleComplete(context.Background(), milk)

	require.Equal(t, []todoapi.Todo{{ID: "1", Body: "Buy milk", Completed: true}}, svc.updates)
	snap := s.Snapshot()
	require.True(t, snap.Items[0].Completed)
	require.True(t, snap.IsEditing("1"), "toggle leaves edit state alone")
}

func TestSession_ToggleFailureSetsError(t *testing.T) {
	svc := newFake(milk)
	svc.updateErr = errors.New("update todo: service returned status 404")
	s := started(t, svc)

	s.ToggleComplete(context.Background(), milk)

	snap := s.Snapshot()
	require.NotEmpty(t, snap.LastError)
	require.False(t, snap.Items[0].Completed)
}

func TestSession_DeleteFailureKeepsItems(t *testing.T) {
	svc := newFake(milk)
	svc.deleteErr = errors.New("delete todo: service returned status 500")
	s := started(t, svc)

	s.Delete(context.Background(), milk)

	snap := s.Snapshot()
	require.NotEmpty(t, snap.LastError)
	require.Equal(t, []todoapi.Todo{milk}, snap.Items)
	require.Equal(t, []string{"list", "delete"}, svc.Calls())
}

func TestSession_DeleteKeepsEditState(t *testing.T) {
	svc := newFake(milk)
	s := started(t, svc)
	s.BeginEdit(milk)

	s.Delete(context.Background(), milk)

	snap := s.Snapshot()
	require.Empty(t, snap.Items)
	require.True(t, snap.IsEditing("1"))
	require.Equal(t, "Buy milk", snap.Draft)
}

func TestSession_ErrorPersistsUntilDismissedOrReplaced(t *testing.T) {
	svc := newFake(milk)
	svc.deleteErr = errors.New("first")
	s := started(t, svc)

	s.Delete(context.Background(), milk)
	require.Equal(t, "first", s.Snapshot().LastError)

	svc.deleteErr = nil
	s.ToggleComplete(context.Background(), milk)
	require.Equal(t, "first", s.Snapshot().LastError, "success does not clear the error")

	svc.updateErr = errors.New("second")
	s.ToggleComplete(context.Background(), milk)
	require.Equal(t, "second", s.Snapshot().LastError)

	s.DismissError()
	require.Empty(t, s.Snapshot().LastError)
}

func TestSession_StrictListFailureKeepsItems(t *testing.T) {
	svc := newFake(milk)
	s := started(t, svc)

	svc.listErr = errors.New("list todo: service returned status 502")
	s.Refresh(context.Background())

	snap := s.Snapshot()
	require.Equal(t, []todoapi.Todo{milk}, snap.Items)
	require.Equal(t, "list todo: service returned status 502", snap.LastError)
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := started(t, newFake(milk))

	snap := s.Snapshot()
	snap.Items[0].Body = "mutated"
	require.Equal(t, "Buy milk", s.Snapshot().Items[0].Body)
}

func TestSession_OperationsAreSerialized(t *testing.T) {
	svc := newFake()
	var inflight, peak atomic.Int32
	svc.createHook = func() {
		n := inflight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inflight.Add(-1)
	}
	s := New(svc, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SubmitNew(context.Background(), &fakeInput{value: "Buy milk"})
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), peak.Load())
	require.Len(t, s.Snapshot().Items, 4, "double submits are not deduplicated")
}
