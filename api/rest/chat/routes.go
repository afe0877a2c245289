package chat

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/policydesk/server/internal/buffer"
	"codeberg.org/policydesk/server/internal/sessions"
)

func RegisterRoutes(router *gin.RouterGroup, answerer Answerer, sessionMgr *sessions.Manager, chatBuffer *buffer.ChatBuffer) {
	chatGroup := router.Group("/chat")
	{
		chatGroup.POST("/ask", AskHandler(answerer, sessionMgr, chatBuffer))
	}
}
