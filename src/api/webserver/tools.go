package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retainworks/retainbot/src/retention/agent"
)

// Tools lists the tool schemas the model can call.
type Tools struct {
	agent *agent.Agent
}

func NewTools(a *agent.Agent) Tools {
	return Tools{agent: a}
}

func (h Tools) List(c *gin.Context) {
	schemas := h.agent.Schemas()
	out := make([]gin.H, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, gin.H{"type": "function", "function": s})
	}
	c.JSON(http.StatusOK, gin.H{"tools": out})
}
