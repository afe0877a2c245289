package chat

import (
	"context"

	"codeberg.org/policydesk/server/internal/assistant"
)

// answers policy questions, satisfied by assistant.Assistant
type Answerer interface {
	Answer(ctx context.Context, req assistant.AnswerRequest) (*assistant.AnswerResponse, error)
}

// request payload for asking a policy question
type AskRequest struct {
	Question            string    `json:"question" binding:"required"`
	SessionID           string    `json:"session_id,omitempty"`
	ConversationHistory []Message `json:"conversation_history,omitempty"`
}

// conversation message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// response payload for a policy answer
type AskResponse struct {
	Answer          string             `json:"answer"`
	Sources         []assistant.Source `json:"sources"`
	ChunksRetrieved int                `json:"chunks_retrieved"`
	Model           string             `json:"model"`
	InputTokens     int                `json:"input_tokens"`
	OutputTokens    int                `json:"output_tokens"`
	SessionID       string             `json:"session_id,omitempty"`
}
