package core

import (
	"context"
	"encoding/json"
	"fmt"
)

// Message represents a single chat turn on the wire.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is one tool invocation requested by the model. Arguments holds the
// payload exactly as the model sent it: providers return either a JSON object
// or a string containing JSON, and the string form is preserved verbatim so a
// malformed payload surfaces when the arguments are resolved, not before.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

type toolCallWire struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	} `json:"function"`
}

func (t *ToolCall) UnmarshalJSON(b []byte) error {
	var w toolCallWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t.ID = w.ID
	t.Name = w.Function.Name
	raw := w.Function.Arguments
	// Stringified arguments: unwrap the quoting but keep the inner text as-is.
	var s string
	if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		t.Arguments = json.RawMessage(s)
		return nil
	}
	t.Arguments = raw
	return nil
}

func (t ToolCall) MarshalJSON() ([]byte, error) {
	var w toolCallWire
	w.ID = t.ID
	w.Type = "function"
	w.Function.Name = t.Name
	quoted, err := json.Marshal(string(t.Arguments))
	if err != nil {
		return nil, err
	}
	w.Function.Arguments = quoted
	return json.Marshal(w)
}

// ArgumentsMap resolves the call arguments into a map. An empty or "null"
// payload resolves to an empty map; anything else must be a JSON object.
func (t ToolCall) ArgumentsMap() (map[string]any, error) {
	trimmed := string(t.Arguments)
	if trimmed == "" || trimmed == "null" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(t.Arguments, &args); err != nil {
		return nil, fmt.Errorf("tool %s arguments: %w", t.Name, err)
	}
	return args, nil
}

// ToolSchema describes one callable capability advertised to the model.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Completion is the structured result of one round-trip: either plain
// content, or a set of tool calls carried on the assistant message.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
	// Message is the raw assistant message, kept so a dispatcher can replay
	// it ahead of the tool results on the finalize round-trip.
	Message Message
}

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model       string
	Temperature float64
}

// Client is a provider-agnostic chat-completions client. A nil tools slice
// sends the request without any tool advertisement, forcing plain text.
type Client interface {
	Complete(ctx context.Context, messages []Message, tools []ToolSchema) (*Completion, error)
}
