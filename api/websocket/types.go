package websocket

import "codeberg.org/policydesk/server/internal/assistant"

type ConnectParams struct {
	SessionID string `form:"session_id"` // optional, enables server-side history
	Token     string `form:"token"`      // jwt token for authenticated users
}

// inbound frame from the client
type ClientFrame struct {
	Type     string `json:"type"` // "ask" or "reset"
	Question string `json:"question,omitempty"`
}

// outbound frame to the client
type ServerFrame struct {
	Type            string             `json:"type"` // "answer", "reset" or "error"
	Answer          string             `json:"answer,omitempty"`
	Sources         []assistant.Source `json:"sources,omitempty"`
	ChunksRetrieved int                `json:"chunks_retrieved,omitempty"`
	Model           string             `json:"model,omitempty"`
	Message         string             `json:"message,omitempty"`
}
