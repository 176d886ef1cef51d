package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/retainworks/retainbot/src/ai/core"
	"github.com/retainworks/retainbot/src/retention/agent"
	"github.com/retainworks/retainbot/src/retention/conversation"
	"github.com/retainworks/retainbot/src/retention/prompt"
	"github.com/retainworks/retainbot/src/retention/tools"
	"github.com/retainworks/retainbot/src/retention/types"
	"github.com/retainworks/retainbot/src/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoClient answers every completion with a fixed reply and keeps the last
// user message it saw.
type echoClient struct {
	reply    string
	lastUser string
}

func (e *echoClient) Complete(ctx context.Context, messages []core.Message, schemas []core.ToolSchema) (*core.Completion, error) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == types.RoleUser {
			e.lastUser = messages[i].Content
			break
		}
	}
	return &core.Completion{Content: e.reply}, nil
}

func newTestRouter(ai core.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registry := tools.NewRegistry()
	registry.Register(tools.NewTimeTool())
	conv := conversation.New(store.NewMemory(), nil)
	return New(agent.New(ai, registry, conv, prompt.System))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&echoClient{reply: "ok"})
	w := doJSON(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAsk(t *testing.T) {
	ai := &echoClient{reply: "happy to help"}
	r := newTestRouter(ai)

	w := doJSON(t, r, http.MethodPost, "/ask", `{"query":"where is my order?","customer_id":"CUST001"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "happy to help", resp.Response)
	assert.Equal(t, "where is my order?", ai.lastUser)
}

func TestAskMissingFields(t *testing.T) {
	r := newTestRouter(&echoClient{reply: "x"})

	w := doJSON(t, r, http.MethodPost, "/ask", `{"query":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/ask", `{"customer_id":"CUST001"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/ask", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskStripsMarkup(t *testing.T) {
	ai := &echoClient{reply: "noted"}
	r := newTestRouter(ai)

	w := doJSON(t, r, http.MethodPost, "/ask",
		`{"query":"<script>alert(1)</script>help me","customer_id":"CUST001"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "help me", ai.lastUser)
}

func TestCancel(t *testing.T) {
	ai := &echoClient{reply: "sorry to see you go"}
	r := newTestRouter(ai)

	w := doJSON(t, r, http.MethodPost, "/cancel", `{"customer_id":"CUST005","style":"AN209"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sorry to see you go", resp.Message)
	assert.Equal(t, "Handle cancellation for customer CUST005 and style AN209", ai.lastUser)
}

func TestRetainDefaultsComplaint(t *testing.T) {
	ai := &echoClient{reply: "please stay"}
	r := newTestRouter(ai)

	w := doJSON(t, r, http.MethodPost, "/retain", `{"customer_id":"CUST005","style":"AN209"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"Handle complaint or cancellation for customer CUST005 and style AN209 with complaint: None",
		ai.lastUser)

	w = doJSON(t, r, http.MethodPost, "/retain",
		`{"customer_id":"CUST005","style":"AN209","complaint":"too small"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, ai.lastUser, "with complaint: too small")
}

func TestToolsList(t *testing.T) {
	r := newTestRouter(&echoClient{reply: "x"})
	w := doJSON(t, r, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tools []struct {
			Type     string          `json:"type"`
			Function core.ToolSchema `json:"function"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tools, 1)
	assert.Equal(t, "function", resp.Tools[0].Type)
	assert.Equal(t, "get_current_time", resp.Tools[0].Function.Name)
}
