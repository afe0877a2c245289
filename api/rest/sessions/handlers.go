package sessions

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/policydesk/server/internal/buffer"
	"codeberg.org/policydesk/server/internal/errors"
	"codeberg.org/policydesk/server/internal/logger"
	"codeberg.org/policydesk/server/internal/sessions"
)

// CreateHandler godoc
// @Summary Create a chat session
// @Description Create a new conversation session with empty history
// @Tags sessions
// @Produce json
// @Success 201 {object} CreateSessionResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/sessions [post]
func CreateHandler(sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionMgr.CreateSession()
		if err != nil {
			errors.InternalError(c, "failed to create session", err)
			return
		}

		c.JSON(http.StatusCreated, CreateSessionResponse{
			SessionID: session.ID,
			ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		})
	}
}

// ResetHandler godoc
// @Summary Clear a session's conversation
// @Description Clear conversation history while keeping the session alive
// @Tags sessions
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/sessions/{id}/reset [post]
func ResetHandler(sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		if err := sessionMgr.ResetSession(sessionID); err != nil {
			errors.SessionNotFound(c)
			return
		}

		c.JSON(http.StatusOK, StatusResponse{Status: "reset"})
	}
}

// DeleteHandler godoc
// @Summary Delete a chat session
// @Description Delete a session and flush any buffered transcript
// @Tags sessions
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/v1/sessions/{id} [delete]
func DeleteHandler(sessionMgr *sessions.Manager, flusher *buffer.Flusher) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		// persist any buffered messages before the session disappears
		if flusher != nil {
			if err := flusher.FlushSession(c.Request.Context(), sessionID); err != nil {
				logger.ErrorErr(err, "failed to flush session on delete", "session_id", sessionID)
			}
		}

		sessionMgr.DeleteSession(sessionID)

		c.JSON(http.StatusOK, StatusResponse{Status: "deleted"})
	}
}
