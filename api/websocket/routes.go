package websocket

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/policydesk/server/api/rest/chat"
	"codeberg.org/policydesk/server/internal/sessions"
)

func RegisterRoutes(router *gin.RouterGroup, answerer chat.Answerer, sessionMgr *sessions.Manager) {
	router.GET("/ws/chat", ChatHandler(answerer, sessionMgr))
}
