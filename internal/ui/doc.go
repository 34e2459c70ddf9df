// Package ui is the interactive terminal interface for jot, built on Bubble
// Tea.
//
// The Model never talks to the todo service directly. Every mutation is a
// tea.Cmd that calls into a session.Session and answers with the resulting
// State snapshot, so the service round-trip happens off the render loop and
// the view always draws from one consistent snapshot.
//
// # Modes
//
//   - browse: move the cursor, toggle, delete, refresh, open overlays
//   - compose: the "new todo" input has focus; enter submits, esc leaves
//   - edit: the selected row is replaced by an input seeded with its body;
//     enter confirms, esc cancels
//
// The compose input is cleared only when the service accepted the create, so
// a failed submit leaves the text in place for another attempt.
//
// # Preferences
//
// Theme (T) and list filter (f) changes are written back to the preferences
// file when Options.PrefsPath is set.
package ui
