// Package session keeps a client-side copy of the todo list in step with the
// todo service.
//
// # State
//
// A Session holds the items returned by the last successful list, at most one
// todo being edited together with its draft body, and the message of the last
// failed operation. Callers read it through Snapshot, which returns a copy.
//
// # Reconciliation
//
// Items are never patched locally. Every successful create, update or delete
// is followed by a full refresh before the operation returns, so a caller that
// takes a snapshot afterwards sees the effect of its change as the service
// reports it.
//
// # Edit State
//
//	Idle --BeginEdit--> Editing(id, body)
//	Editing --SetDraft--> Editing(id, draft)
//	Editing --BeginEdit(other)--> Editing(other, other.body)
//	Editing --CancelEdit--> Idle
//	Editing --ConfirmEdit ok--> Idle
//	Editing --ConfirmEdit failed--> Editing (draft kept)
//
// Deleting the todo under edit does not leave edit mode.
//
// # Errors
//
// Service errors are caught at each operation, stored as LastError and not
// returned. LastError stays until DismissError or the next failure. The one
// exception is a blank draft in ConfirmEdit, which is reported to the caller
// as ErrEmptyDraft and leaves LastError untouched.
//
// # Concurrency
//
// Operations that call the service hold an operation lock for their whole
// duration, refresh included, so two submits from a double key press run one
// after the other. Local transitions and Snapshot only take the state lock and
// do not wait for the network.
package session
