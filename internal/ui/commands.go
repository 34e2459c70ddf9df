package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/jot/internal/logtail"
	"github.com/five82/jot/internal/session"
	"github.com/five82/jot/internal/todoapi"
)

const diagnosticsLines = 200

// snapshotMsg carries session state after an operation completed.
type snapshotMsg session.State

// submittedMsg reports a finished create. cleared is true when the session
// reset the compose input; value is the text that was submitted.
type submittedMsg struct {
	state   session.State
	value   string
	cleared bool
}

// confirmedMsg reports a finished edit confirmation.
type confirmedMsg struct {
	state session.State
	err   error
}

type diagnosticsMsg struct {
	lines []string
	err   error
}

// pendingInput hands the compose value to the session. The session clears it
// only after a successful create, and the model applies that to the real
// input when the message arrives.
type pendingInput struct {
	value   string
	cleared bool
}

func (p *pendingInput) Value() string { return p.value }
func (p *pendingInput) Reset()        { p.value = ""; p.cleared = true }

func startCmd(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		s.Start(ctx)
		return snapshotMsg(s.Snapshot())
	}
}

func refreshCmd(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		s.Refresh(ctx)
		return snapshotMsg(s.Snapshot())
	}
}

func submitCmd(ctx context.Context, s *session.Session, value string) tea.Cmd {
	return func() tea.Msg {
		in := &pendingInput{value: value}
		s.SubmitNew(ctx, in)
		return submittedMsg{state: s.Snapshot(), value: value, cleared: in.cleared}
	}
}

func confirmCmd(ctx context.Context, s *session.Session, todo todoapi.Todo) tea.Cmd {
	return func() tea.Msg {
		err := s.ConfirmEdit(ctx, todo)
		return confirmedMsg{state: s.Snapshot(), err: err}
	}
}

func toggleCmd(ctx context.Context, s *session.Session, todo todoapi.Todo) tea.Cmd {
	return func() tea.Msg {
		s.ToggleComplete(ctx, todo)
		return snapshotMsg(s.Snapshot())
	}
}

func deleteCmd(ctx context.Context, s *session.Session, todo todoapi.Todo) tea.Cmd {
	return func() tea.Msg {
		s.Delete(ctx, todo)
		return snapshotMsg(s.Snapshot())
	}
}

func readDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return diagnosticsMsg{lines: []string{"Logging is disabled (log_file = \"-\")."}}
		}
		lines, err := logtail.Read(path, diagnosticsLines)
		if err != nil {
			return diagnosticsMsg{err: err}
		}
		return diagnosticsMsg{lines: logtail.Summarize(lines)}
	}
}
