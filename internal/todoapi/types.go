package todoapi

import (
	"bytes"
	"encoding/json"
)

// Todo mirrors the todo resource exposed by the service.
type Todo struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	Completed bool   `json:"completed"`
}

// Ack is the acknowledgement returned by delete.
type Ack struct {
	Success bool            `json:"success"`
	Raw     json.RawMessage `json:"-"`
}

// createResponse accepts either a todo document or the store's insert result.
type createResponse struct {
	ID         string `json:"id"`
	Body       string `json:"body"`
	Completed  *bool  `json:"completed"`
	InsertedID string `json:"InsertedID"`
}

func (r createResponse) merge(sent Todo) Todo {
	out := sent
	switch {
	case r.ID != "":
		out.ID = r.ID
	case r.InsertedID != "":
		out.ID = r.InsertedID
	}
	if r.Body != "" {
		out.Body = r.Body
	}
	if r.Completed != nil {
		out.Completed = *r.Completed
	}
	return out
}

// decodeList parses a list payload. Anything that is not a JSON array yields
// an empty list; ok is false when the payload could not be parsed at all.
func decodeList(payload []byte) (todos []Todo, ok bool) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, false
	}
	if trimmed[0] != '[' {
		return nil, json.Valid(trimmed)
	}
	if err := json.Unmarshal(trimmed, &todos); err != nil {
		return nil, false
	}
	return todos, true
}
