package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/policydesk/server/api/rest/admin"
	"codeberg.org/policydesk/server/api/rest/chat"
	"codeberg.org/policydesk/server/api/rest/health"
	"codeberg.org/policydesk/server/api/rest/sessions"
	"codeberg.org/policydesk/server/api/websocket"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.Use(RateLimitMiddleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		chat.RegisterRoutes(v1, server.services.Assistant, server.sessionMgr, server.buffer)
		sessions.RegisterRoutes(v1, server.sessionMgr, server.flusher)
		admin.RegisterRoutes(v1, server.services.Storage, server.services.LLM, server.config.DataDirectory)
		websocket.RegisterRoutes(v1, server.services.Assistant, server.sessionMgr)
	}
}
