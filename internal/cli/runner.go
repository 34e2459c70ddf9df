// Package cli implements jot's one-shot subcommands. Each command drives the
// same session.Session the interactive UI uses.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/five82/jot/internal/session"
	"github.com/five82/jot/internal/todoapi"
)

// Options configure a command run.
type Options struct {
	Session *session.Session
	Out     io.Writer
	Err     io.Writer
}

// Run dispatches a subcommand and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opts Options) int {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if len(args) == 0 {
		PrintHelp(opts.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opts.Out)
		return 0
	}

	if opts.Session == nil {
		fail(opts.Err, "no session configured")
		return 1
	}
	r := runner{ctx: ctx, s: opts.Session, out: opts.Out, err: opts.Err}

	switch cmd {
	case "ls":
		return r.list()

	case "add":
		if len(a) == 0 {
			fail(r.err, "usage: jot add <body...>")
			return 2
		}
		return r.add(strings.Join(a, " "))

	case "done":
		if len(a) != 1 {
			fail(r.err, "usage: jot done <id>")
			return 2
		}
		return r.toggle(a[0])

	case "edit":
		if len(a) < 2 {
			fail(r.err, "usage: jot edit <id> <body...>")
			return 2
		}
		return r.edit(a[0], strings.Join(a[1:], " "))

	case "rm":
		if len(a) != 1 {
			fail(r.err, "usage: jot rm <id>")
			return 2
		}
		return r.remove(a[0])
	}

	fail(opts.Err, "unknown command: "+cmd)
	fmt.Fprintln(opts.Err)
	PrintHelp(opts.Err)
	return 2
}

// PrintHelp writes usage to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `jot - todos on a remote todo service

Usage:
  jot [-config path] [-url base] [command]

Without a command jot opens the interactive list.

Commands:
  ls                   List todos
  add <body...>        Add a todo (body can be multiple words)
  done <id>            Toggle completion of a todo
  edit <id> <body...>  Replace a todo's body (marks it not done)
  rm <id>              Delete a todo
  help                 Show this help

Examples:
  jot add "Buy milk"
  jot ls
  jot done 65f1c0a2e4b0d1a2b3c4d5e6
`)
}

type runner struct {
	ctx context.Context
	s   *session.Session
	out io.Writer
	err io.Writer
}

func (r runner) list() int {
	r.s.Start(r.ctx)
	if r.failed() {
		return 1
	}

	snap := r.s.Snapshot()
	open := 0
	for _, todo := range snap.Items {
		if !todo.Completed {
			open++
		}
	}
	fmt.Fprintf(r.out, "%s  %s\n",
		headerStyle.Sprint("Todos"),
		mutedStyle.Sprintf("%d open / %d total", open, len(snap.Items)),
	)
	if len(snap.Items) == 0 {
		fmt.Fprintln(r.out, mutedStyle.Sprint("No todos. Add one with `jot add \"Buy milk\"`."))
		return 0
	}
	for _, todo := range snap.Items {
		fmt.Fprintln(r.out, formatTodo(todo))
	}
	return 0
}

func (r runner) add(body string) int {
	in := &argInput{value: body}
	r.s.SubmitNew(r.ctx, in)
	if r.failed() {
		return 1
	}
	ok(r.out, "added")
	return 0
}

func (r runner) toggle(id string) int {
	todo, found := r.lookup(id)
	if !found {
		return 1
	}
	r.s.ToggleComplete(r.ctx, todo)
	if r.failed() {
		return 1
	}
	if todo.Completed {
		ok(r.out, "reopened "+id)
	} else {
		ok(r.out, "completed "+id)
	}
	return 0
}

func (r runner) edit(id, body string) int {
	todo, found := r.lookup(id)
	if !found {
		return 1
	}
	r.s.BeginEdit(todo)
	r.s.SetDraft(body)
	if err := r.s.ConfirmEdit(r.ctx, todo); err != nil {
		fail(r.err, "edit: "+err.Error())
		if errors.Is(err, session.ErrEmptyDraft) {
			return 2
		}
		return 1
	}
	if r.failed() {
		return 1
	}
	ok(r.out, "updated "+id)
	return 0
}

func (r runner) remove(id string) int {
	todo, found := r.lookup(id)
	if !found {
		return 1
	}
	r.s.Delete(r.ctx, todo)
	if r.failed() {
		return 1
	}
	ok(r.out, "removed "+id)
	return 0
}

// lookup loads the list and finds id in it.
func (r runner) lookup(id string) (todoapi.Todo, bool) {
	r.s.Start(r.ctx)
	if r.failed() {
		return todoapi.Todo{}, false
	}
	todo, found := r.s.Snapshot().Item(id)
	if !found {
		fail(r.err, "no todo with id "+id)
	}
	return todo, found
}

// failed prints the session's last error, if any.
func (r runner) failed() bool {
	msg := r.s.Snapshot().LastError
	if msg == "" {
		return false
	}
	fail(r.err, msg)
	return true
}

func formatTodo(todo todoapi.Todo) string {
	if todo.Completed {
		return fmt.Sprintf("%s %s  %s", successStyle.Sprint("[x]"), idStyle.Sprint(todo.ID), doneStyle.Sprint(todo.Body))
	}
	return fmt.Sprintf("[ ] %s  %s", idStyle.Sprint(todo.ID), todo.Body)
}

// argInput adapts command arguments to session.Input.
type argInput struct{ value string }

func (a *argInput) Value() string { return a.value }
func (a *argInput) Reset()        { a.value = "" }
