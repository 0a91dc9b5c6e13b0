package request_models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ChatRequest is the body of POST /api/plan/chat.
type ChatRequest struct {
	Plan    json.RawMessage `json:"plan"`
	Message string          `json:"message"`
}

// HasPlan reports whether plan is a JSON object.
func (r ChatRequest) HasPlan() bool {
	trimmed := bytes.TrimSpace(r.Plan)
	return len(trimmed) > 1 && trimmed[0] == '{'
}

func (r ChatRequest) HasMessage() bool {
	return strings.TrimSpace(r.Message) != ""
}
