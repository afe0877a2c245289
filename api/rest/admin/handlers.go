package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/policydesk/server/internal/chunker"
	"codeberg.org/policydesk/server/internal/errors"
	"codeberg.org/policydesk/server/internal/llm"
	"codeberg.org/policydesk/server/internal/loader"
	"codeberg.org/policydesk/server/internal/logger"
	"codeberg.org/policydesk/server/internal/storage"
)

// ReindexHandler godoc
// @Summary Rebuild the policy index
// @Description Admin-only endpoint to reload, re-chunk and re-embed all policy documents
// @Tags admin
// @Produce json
// @Success 200 {object} ReindexResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/admin/reindex [post]
// @Security BearerAuth
func ReindexHandler(store *storage.Client, embedder llm.Embedder, dataDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger.Info("starting reindex", "path", dataDir)

		pages, loadErrs := loader.LoadDirectory(dataDir)
		for _, err := range loadErrs {
			logger.Warn("loading error during reindex", "error", err.Error())
		}

		if len(pages) == 0 {
			errors.InternalError(c, "no pages loaded from policy documents", nil)
			return
		}

		chunks := chunker.SplitPages(pages, chunker.DefaultOptions())
		if len(chunks) == 0 {
			errors.InternalError(c, "no chunks generated from policy documents", nil)
			return
		}

		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Content
		}

		embeddings, err := embedder.GenerateEmbeddings(ctx, texts)
		if err != nil {
			errors.InternalError(c, "failed to generate embeddings", err)
			return
		}

		// rebuild from scratch so removed documents disappear from the index
		if err := store.ClearAllChunks(ctx); err != nil {
			errors.InternalError(c, "failed to clear existing chunks", err)
			return
		}

		if err := store.InsertChunksBatch(ctx, chunks, embeddings); err != nil {
			errors.InternalError(c, "failed to insert chunks", err)
			return
		}

		count, err := store.GetChunkCount(ctx)
		if err != nil {
			errors.InternalError(c, "failed to verify chunk count", err)
			return
		}

		documents := make(map[string]struct{})
		for _, page := range pages {
			documents[page.Source] = struct{}{}
		}

		logger.Info("reindex complete",
			"documents", len(documents),
			"pages", len(pages),
			"chunks_inserted", len(chunks),
			"total_chunks", count,
		)

		c.JSON(http.StatusOK, ReindexResponse{
			Status:         "reindexed",
			DocumentsFound: len(documents),
			PagesLoaded:    len(pages),
			ChunksIndexed:  len(chunks),
			TotalChunks:    count,
		})
	}
}
