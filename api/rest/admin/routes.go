package admin

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/policydesk/server/internal/auth"
	"codeberg.org/policydesk/server/internal/llm"
	"codeberg.org/policydesk/server/internal/storage"
)

func RegisterRoutes(router *gin.RouterGroup, store *storage.Client, embedder llm.Embedder, dataDir string) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(auth.AuthMiddleware(), auth.AdminMiddleware())

	adminGroup.POST("/reindex", ReindexHandler(store, embedder, dataDir))
}
