package buffer

import "time"

// represents a chat message waiting to be flushed to Postgres
type BufferedMessage struct {
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// redis key patterns
const (
	// chat:{sessionID}:messages - stores transcript messages as JSON list
	keySessionMessages = "chat:%s:messages"

	// dirty_sessions:messages - set of session IDs with unflushed messages
	keyDirtySessionsMessages = "dirty_sessions:messages"
)
