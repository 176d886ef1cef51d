package tools

import (
	"context"
	"time"

	"github.com/retainworks/retainbot/src/ai/core"
)

const defaultTimezone = "US/Central"

// TimeTool reports the current date and time in a requested timezone.
type TimeTool struct{}

func NewTimeTool() *TimeTool { return &TimeTool{} }

func (t *TimeTool) Name() string { return "get_current_time" }

func (t *TimeTool) Schema() core.ToolSchema {
	return core.ToolSchema{
		Name:        t.Name(),
		Description: "Returns the current date and time in a specified timezone (default: US/Central).",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"timezone": map[string]any{
					"type":        "string",
					"description": "Timezone name (e.g., 'US/Central', 'UTC').",
				},
			},
			"required": []string{},
		},
	}
}

func (t *TimeTool) Invoke(ctx context.Context, args map[string]any) (string, error) {
	return time.Now().In(resolveLocation(stringArg(args, "timezone"))).Format("2006-01-02 15:04:05"), nil
}

// resolveLocation never returns nil: unknown zones fall back to the default,
// and a host without tzdata falls back to UTC.
func resolveLocation(tz string) *time.Location {
	if tz == "" {
		tz = defaultTimezone
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(defaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}
