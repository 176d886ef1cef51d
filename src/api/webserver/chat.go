package webserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/retainworks/retainbot/src/retention/agent"
)

// Chat handles the conversational endpoints. Inbound text is stripped of
// markup before it reaches the store or the model.
type Chat struct {
	agent     *agent.Agent
	sanitizer *bluemonday.Policy
}

func NewChat(a *agent.Agent) Chat {
	return Chat{agent: a, sanitizer: bluemonday.StrictPolicy()}
}

func (h Chat) clean(s string) string {
	return strings.TrimSpace(h.sanitizer.Sanitize(s))
}

// Ask is the free-form chat endpoint.
func (h Chat) Ask(c *gin.Context) {
	var req struct {
		Query      string `json:"query" binding:"required"`
		CustomerID string `json:"customer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	response := h.agent.Chat(c.Request.Context(), h.clean(req.Query), req.CustomerID, true)
	c.JSON(http.StatusOK, gin.H{"response": response})
}

// Cancel drives a cancellation without tool use, producing a direct answer.
func (h Chat) Cancel(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customer_id" binding:"required"`
		Style      string `json:"style" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	message := fmt.Sprintf("Handle cancellation for customer %s and style %s", req.CustomerID, req.Style)
	response := h.agent.Chat(c.Request.Context(), message, req.CustomerID, false)
	c.JSON(http.StatusOK, gin.H{"message": response})
}

// Retain drives the retention flow with tools enabled. A missing complaint
// marks the start of the conversation.
func (h Chat) Retain(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customer_id" binding:"required"`
		Style      string `json:"style" binding:"required"`
		Complaint  string `json:"complaint"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	complaint := h.clean(req.Complaint)
	if complaint == "" {
		complaint = "None"
	}
	message := fmt.Sprintf("Handle complaint or cancellation for customer %s and style %s with complaint: %s",
		req.CustomerID, req.Style, complaint)
	response := h.agent.Chat(c.Request.Context(), message, req.CustomerID, true)
	c.JSON(http.StatusOK, gin.H{"message": response})
}
