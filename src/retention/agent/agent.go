// Package agent runs the conversation loop: persist the user turn, call the
// model, dispatch any tool calls, persist and return the answer.
package agent

import (
	"context"
	"log"

	"github.com/retainworks/retainbot/src/ai/core"
	"github.com/retainworks/retainbot/src/retention/conversation"
	"github.com/retainworks/retainbot/src/retention/tools"
	"github.com/retainworks/retainbot/src/retention/types"
)

const defaultHistoryLimit = 10

// Agent ties the chat client, tool registry and conversation store together
// behind a single Chat entry point.
type Agent struct {
	ai           core.Client
	registry     *tools.Registry
	conv         *conversation.Store
	dispatcher   *Dispatcher
	systemPrompt string
	historyLimit int
}

type Option func(*Agent)

// WithHistoryLimit bounds how many recent turns are replayed into the
// prompt. Older context is dropped deliberately to bound prompt size.
func WithHistoryLimit(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.historyLimit = n
		}
	}
}

func New(ai core.Client, registry *tools.Registry, conv *conversation.Store, systemPrompt string, opts ...Option) *Agent {
	a := &Agent{
		ai:           ai,
		registry:     registry,
		conv:         conv,
		dispatcher:   NewDispatcher(registry, ai),
		systemPrompt: systemPrompt,
		historyLimit: defaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Schemas exposes the registered tool schemas for the /tools route.
func (a *Agent) Schemas() []core.ToolSchema {
	return a.registry.Schemas()
}

// Chat processes one user message for a customer. It never returns an
// error: every failure becomes an "Error: ..." string that is persisted as
// the assistant turn and handed back, so the conversation log shows what
// the caller saw.
func (a *Agent) Chat(ctx context.Context, message, customerID string, useTools bool) string {
	text, err := a.chat(ctx, message, customerID, useTools)
	if err != nil {
		log.Printf("agent: chat for %s failed: %v", customerID, err)
		text = "Error: " + err.Error()
	}
	if _, err := a.conv.Append(ctx, customerID, types.RoleAssistant, text); err != nil {
		log.Printf("agent: persist assistant turn for %s: %v", customerID, err)
	}
	return text
}

func (a *Agent) chat(ctx context.Context, message, customerID string, useTools bool) (string, error) {
	// The user turn goes in before the model is contacted, so a provider
	// failure still leaves the utterance recorded.
	if _, err := a.conv.Append(ctx, customerID, types.RoleUser, message); err != nil {
		return "", err
	}

	// The bounded window ends with the turn just appended, so the new
	// message rides in as the history tail.
	history, err := a.conv.History(ctx, customerID, a.historyLimit)
	if err != nil {
		return "", err
	}

	msgs := make([]core.Message, 0, len(history)+1)
	msgs = append(msgs, core.Message{Role: types.RoleSystem, Content: a.systemPrompt})
	for _, t := range history {
		msgs = append(msgs, core.Message{Role: t.Role, Content: t.Content, ToolCallID: t.ToolCallID})
	}

	var schemas []core.ToolSchema
	if useTools {
		schemas = a.registry.Schemas()
	}

	completion, err := a.ai.Complete(ctx, msgs, schemas)
	if err != nil {
		return "", err
	}

	if useTools && len(completion.ToolCalls) > 0 {
		return a.dispatcher.Dispatch(ctx, msgs, completion)
	}
	return completion.Content, nil
}
