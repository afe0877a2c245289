package assistant

import (
	"context"

	"codeberg.org/policydesk/server/internal/llm"
	"codeberg.org/policydesk/server/internal/retriever"
)

// interface for policy passage retrieval
type Retriever interface {
	Search(ctx context.Context, question string) ([]retriever.SearchResult, error)
}

// orchestrates retrieval-augmented question answering
type Assistant struct {
	retriever Retriever
	generator llm.TextGenerator
}

// represents a single conversation turn
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // message content
}

// contains all inputs for answering a question
type AnswerRequest struct {
	Question            string
	ConversationHistory []Message
}

// a cited source backing an answer
type Source struct {
	Document string `json:"document"`
	Page     int    `json:"page"`
	Snippet  string `json:"snippet"`
}

// contains the generated answer and its citations
type AnswerResponse struct {
	Answer          string   `json:"answer"`
	Sources         []Source `json:"sources"`
	ChunksRetrieved int      `json:"chunks_retrieved"`
	Model           string   `json:"model"`
	InputTokens     int      `json:"input_tokens"`
	OutputTokens    int      `json:"output_tokens"`
}
