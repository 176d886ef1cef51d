package agent

import (
	"context"
	"log"

	"github.com/retainworks/retainbot/src/ai/core"
	"github.com/retainworks/retainbot/src/retention/tools"
	"github.com/retainworks/retainbot/src/retention/types"
)

// Dispatcher executes the tool calls of a completion and drives the second
// round-trip that turns their results into a final textual answer.
type Dispatcher struct {
	registry *tools.Registry
	ai       core.Client
}

func NewDispatcher(registry *tools.Registry, ai core.Client) *Dispatcher {
	return &Dispatcher{registry: registry, ai: ai}
}

// Dispatch resolves and invokes each requested call in model order, appends
// the results as tool turns, then issues one finalize completion with no
// tools attached. The first failing call aborts the turn; later calls are
// not attempted.
func (d *Dispatcher) Dispatch(ctx context.Context, messages []core.Message, completion *core.Completion) (string, error) {
	msgs := make([]core.Message, 0, len(messages)+len(completion.ToolCalls)+1)
	msgs = append(msgs, messages...)
	msgs = append(msgs, completion.Message)

	for _, call := range completion.ToolCalls {
		args, err := call.ArgumentsMap()
		if err != nil {
			return "", &MalformedArgumentsError{Tool: call.Name, Err: err}
		}
		tool, ok := d.registry.Lookup(call.Name)
		if !ok {
			return "", &UnknownToolError{Tool: call.Name}
		}
		if err := tools.ValidateArgs(tool.Schema(), args); err != nil {
			return "", &MalformedArgumentsError{Tool: call.Name, Err: err}
		}
		result, err := tool.Invoke(ctx, args)
		if err != nil {
			return "", &ToolExecutionError{Tool: call.Name, Err: err}
		}
		log.Printf("agent: tool %s returned %d bytes", call.Name, len(result))
		msgs = append(msgs, core.Message{
			Role:       types.RoleTool,
			Content:    result,
			ToolCallID: call.ID,
		})
	}

	final, err := d.ai.Complete(ctx, msgs, nil)
	if err != nil {
		return "", err
	}
	return final.Content, nil
}
