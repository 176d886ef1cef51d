package agent

import "fmt"

// UnknownToolError means the model requested a tool that is not registered.
// The whole turn fails; nothing is dispatched.
type UnknownToolError struct {
	Tool string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("tool %s not found", e.Tool)
}

// MalformedArgumentsError means a tool-call payload was not valid JSON or
// did not satisfy the tool's declared schema.
type MalformedArgumentsError struct {
	Tool string
	Err  error
}

func (e *MalformedArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: %v", e.Tool, e.Err)
}

func (e *MalformedArgumentsError) Unwrap() error { return e.Err }

// ToolExecutionError means a tool ran and failed. Remaining queued calls
// are not attempted.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("executing tool %s: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }
