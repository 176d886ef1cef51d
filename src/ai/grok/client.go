package grok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/retainworks/retainbot/src/ai/core"
	"github.com/retainworks/retainbot/src/webclient"
)

const defaultBaseURL = "https://api.x.ai/v1"

func init() {
	core.RegisterProvider("grok", newClient, "xai")
}

type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	defaults   core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.GrokKey == "" {
		return nil, fmt.Errorf("grok: API key not configured")
	}
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &client{
		apiKey:     cfg.GrokKey,
		baseURL:    base,
		httpClient: webclient.NewDefault(timeout),
		defaults: core.Options{
			Model:       core.ResolveModelName("grok", cfg.Model),
			Temperature: cfg.Temperature,
		},
	}, nil
}

func (c *client) Complete(ctx context.Context, messages []core.Message, tools []core.ToolSchema) (*core.Completion, error) {
	payload := map[string]any{
		"model":    c.defaults.Model,
		"messages": messages,
	}
	if c.defaults.Temperature != 0 {
		payload["temperature"] = c.defaults.Temperature
	}
	if len(tools) > 0 {
		payload["tools"] = buildToolsPayload(tools)
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("grok: encode request: %w", err)
	}

	status, body, err := webclient.DoWithRetry(ctx, 2, 2*time.Second, func() (int, []byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(bodyBytes))
		if err != nil {
			return 0, nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, nil, err
		}
		return resp.StatusCode, b, nil
	})
	if err != nil {
		return nil, &core.TransportError{Err: err}
	}
	if status != http.StatusOK {
		return nil, &core.HTTPError{Status: status, Body: string(body)}
	}
	return decodeCompletion(body)
}

func buildToolsPayload(tools []core.ToolSchema) []map[string]any {
	out := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		out = append(out, map[string]any{
			"type":     "function",
			"function": t,
		})
	}
	return out
}

func decodeCompletion(body []byte) (*core.Completion, error) {
	var result struct {
		Choices []struct {
			Message core.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("grok: decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("grok: empty choices in response")
	}
	msg := result.Choices[0].Message
	return &core.Completion{
		Content:   msg.Content,
		ToolCalls: msg.ToolCalls,
		Message:   msg,
	}, nil
}
