// Package tools holds the callable capabilities advertised to the model and
// the registry the dispatcher resolves them from.
package tools

import (
	"context"
	"fmt"

	"github.com/retainworks/retainbot/src/ai/core"
)

// Tool is one capability the model may invoke.
type Tool interface {
	Name() string
	Schema() core.ToolSchema
	// Invoke runs the tool with schema-validated arguments. A string result
	// is fed back to the model; business outcomes like "customer not found"
	// are results, not errors.
	Invoke(ctx context.Context, args map[string]any) (string, error)
}

// Registry maps tool names to implementations, preserving registration
// order for schema advertisement.
type Registry struct {
	order []string
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register stores the tool under its declared name. Re-registering a name
// overwrites silently, keeping the original position.
func (r *Registry) Register(t Tool) {
	name := t.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Lookup resolves a tool by name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Schemas returns all registered schemas in registration order.
func (r *Registry) Schemas() []core.ToolSchema {
	out := make([]core.ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Schema())
	}
	return out
}

// ValidateArgs checks decoded arguments against the declared JSON schema:
// required keys must be present and primitive types must match. Unknown
// keys pass through untouched.
func ValidateArgs(schema core.ToolSchema, args map[string]any) error {
	required, _ := schema.Parameters["required"].([]string)
	if required == nil {
		if raw, ok := schema.Parameters["required"].([]any); ok {
			for _, r := range raw {
				if s, ok := r.(string); ok {
					required = append(required, s)
				}
			}
		}
	}
	for _, key := range required {
		if v, ok := args[key]; !ok || v == nil {
			return fmt.Errorf("missing required argument %q", key)
		}
	}

	props, _ := schema.Parameters["properties"].(map[string]any)
	for key, val := range args {
		if val == nil {
			continue
		}
		spec, ok := props[key].(map[string]any)
		if !ok {
			continue
		}
		want, _ := spec["type"].(string)
		switch want {
		case "string":
			if _, ok := val.(string); !ok {
				return fmt.Errorf("argument %q must be a string", key)
			}
		case "integer", "number":
			if _, ok := val.(float64); !ok {
				return fmt.Errorf("argument %q must be a number", key)
			}
		case "boolean":
			if _, ok := val.(bool); !ok {
				return fmt.Errorf("argument %q must be a boolean", key)
			}
		}
	}
	return nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string, def int) int {
	if f, ok := args[key].(float64); ok {
		return int(f)
	}
	return def
}
