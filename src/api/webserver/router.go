package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/retainworks/retainbot/src/retention/agent"
)

// New builds the gin engine with all chatbot routes attached.
func New(a *agent.Agent) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"http://localhost:3000"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	chatH := NewChat(a)
	toolsH := NewTools(a)

	r.POST("/ask", chatH.Ask)
	r.POST("/retain", chatH.Retain)
	r.POST("/cancel", chatH.Cancel)
	r.GET("/tools", toolsH.List)
	r.GET("/health", Health)

	return r
}
