package chat

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/policydesk/server/internal/assistant"
	"codeberg.org/policydesk/server/internal/buffer"
	"codeberg.org/policydesk/server/internal/errors"
	"codeberg.org/policydesk/server/internal/logger"
	"codeberg.org/policydesk/server/internal/sessions"
)

// AskHandler godoc
// @Summary Ask a policy question
// @Description Answer a question about company policy documents with citations
// @Tags chat
// @Accept json
// @Produce json
// @Param request body AskRequest true "Question request"
// @Success 200 {object} AskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/chat/ask [post]
func AskHandler(answerer Answerer, sessionMgr *sessions.Manager, chatBuffer *buffer.ChatBuffer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		var history []assistant.Message

		// for tracked sessions: load history from the session manager
		// for stateless calls: use history from the request
		if req.SessionID != "" {
			session, ok := sessionMgr.GetSession(req.SessionID)
			if !ok {
				errors.SessionNotFound(c)
				return
			}
			history = session.ConversationHistory
		} else {
			history = make([]assistant.Message, 0, len(req.ConversationHistory))
			for _, msg := range req.ConversationHistory {
				if msg.Content != "" {
					history = append(history, assistant.Message{
						Role:    msg.Role,
						Content: msg.Content,
					})
				}
			}
		}

		resp, err := answerer.Answer(c.Request.Context(), assistant.AnswerRequest{
			Question:            req.Question,
			ConversationHistory: history,
		})
		if err != nil {
			errors.InternalError(c, "failed to answer question", err)
			return
		}

		// for tracked sessions: append the exchange and buffer the transcript
		if req.SessionID != "" {
			updated := append(history,
				assistant.Message{Role: "user", Content: req.Question},
				assistant.Message{Role: "assistant", Content: resp.Answer},
			)
			if err := sessionMgr.UpdateSession(req.SessionID, updated); err != nil {
				logger.Warn("failed to update session history", "session_id", req.SessionID, "error", err.Error())
			}

			if chatBuffer != nil {
				bufferExchange(c, chatBuffer, req.SessionID, req.Question, resp.Answer)
			}
		}

		c.JSON(http.StatusOK, AskResponse{
			Answer:          resp.Answer,
			Sources:         resp.Sources,
			ChunksRetrieved: resp.ChunksRetrieved,
			Model:           resp.Model,
			InputTokens:     resp.InputTokens,
			OutputTokens:    resp.OutputTokens,
			SessionID:       req.SessionID,
		})
	}
}

// buffers both sides of an exchange for later persistence (non-fatal errors)
func bufferExchange(c *gin.Context, chatBuffer *buffer.ChatBuffer, sessionID, question, answer string) {
	ctx := c.Request.Context()
	now := time.Now()

	if err := chatBuffer.AddMessage(ctx, &buffer.BufferedMessage{
		SessionID: sessionID,
		Role:      "user",
		Content:   question,
		CreatedAt: now,
	}); err != nil {
		logger.ErrorErr(err, "failed to buffer user message", "session_id", sessionID)
	}

	if err := chatBuffer.AddMessage(ctx, &buffer.BufferedMessage{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   answer,
		CreatedAt: now,
	}); err != nil {
		logger.ErrorErr(err, "failed to buffer assistant message", "session_id", sessionID)
	}
}
