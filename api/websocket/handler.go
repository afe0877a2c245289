package websocket

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"codeberg.org/policydesk/server/api/rest/chat"
	"codeberg.org/policydesk/server/internal/assistant"
	"codeberg.org/policydesk/server/internal/auth"
	"codeberg.org/policydesk/server/internal/errors"
	"codeberg.org/policydesk/server/internal/logger"
	"codeberg.org/policydesk/server/internal/sessions"
)

const (
	writeTimeout   = 10 * time.Second
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     CheckOrigin,
}

// handles WebSocket connections for interactive policy Q&A.
// each connection runs its own read loop; history lives in the
// session manager when a session_id is provided, otherwise
// it is kept per-connection.
func ChatHandler(answerer chat.Answerer, sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params ConnectParams
		if err := c.ShouldBindQuery(&params); err != nil {
			errors.BadRequest(c, "invalid parameters", err)
			return
		}

		// browsers cannot set headers on websocket upgrades, so the
		// token rides in the query string instead of a Bearer header
		var subject string
		if params.Token != "" {
			claims, err := auth.ValidateJWT(params.Token)
			if err != nil {
				errors.Unauthorized(c, "invalid or expired token")
				return
			}
			subject = claims.Subject
		}

		if params.SessionID != "" {
			if _, ok := sessionMgr.GetSession(params.SessionID); !ok {
				errors.SessionNotFound(c)
				return
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.ErrorErr(err, "failed to upgrade websocket connection")
			return
		}
		defer conn.Close() //nolint:errcheck // connection teardown

		conn.SetReadLimit(maxMessageSize)

		logger.Info("websocket chat connected", "session_id", params.SessionID, "subject", subject)

		var localHistory []assistant.Message

		for {
			var frame ClientFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Warn("websocket read error", "error", err.Error())
				}
				return
			}

			switch frame.Type {
			case "ask":
				question := strings.TrimSpace(frame.Question)
				if question == "" {
					writeFrame(conn, ServerFrame{Type: "error", Message: "question cannot be empty"})
					continue
				}

				history := localHistory
				if params.SessionID != "" {
					if session, ok := sessionMgr.GetSession(params.SessionID); ok {
						history = session.ConversationHistory
					}
				}

				resp, err := answerer.Answer(c.Request.Context(), assistant.AnswerRequest{
					Question:            question,
					ConversationHistory: history,
				})
				if err != nil {
					logger.ErrorErr(err, "websocket answer failed", "session_id", params.SessionID)
					writeFrame(conn, ServerFrame{Type: "error", Message: "failed to answer question"})
					continue
				}

				updated := append(history,
					assistant.Message{Role: "user", Content: question},
					assistant.Message{Role: "assistant", Content: resp.Answer},
				)

				if params.SessionID != "" {
					if err := sessionMgr.UpdateSession(params.SessionID, updated); err != nil {
						logger.Warn("failed to update session history", "session_id", params.SessionID, "error", err.Error())
					}
				} else {
					localHistory = updated
				}

				writeFrame(conn, ServerFrame{
					Type:            "answer",
					Answer:          resp.Answer,
					Sources:         resp.Sources,
					ChunksRetrieved: resp.ChunksRetrieved,
					Model:           resp.Model,
				})

			case "reset":
				localHistory = nil
				if params.SessionID != "" {
					if err := sessionMgr.ResetSession(params.SessionID); err != nil {
						writeFrame(conn, ServerFrame{Type: "error", Message: "session not found"})
						continue
					}
				}
				writeFrame(conn, ServerFrame{Type: "reset"})

			default:
				writeFrame(conn, ServerFrame{Type: "error", Message: "unknown frame type"})
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, frame ServerFrame) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck // deadline on live conn
	if err := conn.WriteJSON(frame); err != nil {
		logger.Warn("websocket write error", "error", err.Error())
	}
}
