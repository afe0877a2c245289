package sessions

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/policydesk/server/internal/buffer"
	"codeberg.org/policydesk/server/internal/sessions"
)

func RegisterRoutes(router *gin.RouterGroup, sessionMgr *sessions.Manager, flusher *buffer.Flusher) {
	sessionGroup := router.Group("/sessions")
	{
		sessionGroup.POST("", CreateHandler(sessionMgr))
		sessionGroup.POST("/:id/reset", ResetHandler(sessionMgr))
		sessionGroup.DELETE("/:id", DeleteHandler(sessionMgr, flusher))
	}
}
