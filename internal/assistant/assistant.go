package assistant

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/policydesk/server/internal/llm"
	"codeberg.org/policydesk/server/internal/retriever"
)

const (
	// most recent turns rendered into the generation request
	maxHistoryTurns = 20

	// snippet length for cited sources
	snippetLength = 200
)

func New(ret Retriever, generator llm.TextGenerator) *Assistant {
	return &Assistant{
		retriever: ret,
		generator: generator,
	}
}

// Answer retrieves relevant policy passages and generates a cited answer.
// An empty retrieval still calls the generator: the prompt instructs it to
// reply with the refusal sentence when the context is insufficient.
func (a *Assistant) Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	passages, err := a.retriever.Search(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve policy passages: %w", err)
	}

	systemPrompt := buildSystemPrompt(passages)

	messages := buildMessages(question, req.ConversationHistory)

	response, err := a.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: systemPrompt,
		Messages:     messages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	sources := make([]Source, 0, len(passages))
	for _, p := range passages {
		sources = append(sources, Source{
			Document: p.Source,
			Page:     p.Page,
			Snippet:  retriever.Truncate(p.Content, snippetLength),
		})
	}

	return &AnswerResponse{
		Answer:          response.Text,
		Sources:         sources,
		ChunksRetrieved: len(passages),
		Model:           a.generator.Model(),
		InputTokens:     response.Usage.InputTokens,
		OutputTokens:    response.Usage.OutputTokens,
	}, nil
}

// builds the messages array: capped history followed by the new question
// turns with empty content are dropped, the generation API rejects them
func buildMessages(question string, history []Message) []llm.Message {
	trimmed := history
	if len(trimmed) > maxHistoryTurns {
		trimmed = trimmed[len(trimmed)-maxHistoryTurns:]
	}

	messages := make([]llm.Message, 0, len(trimmed)+1)

	for _, msg := range trimmed {
		if msg.Content == "" {
			continue
		}

		messages = append(messages, llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	messages = append(messages, llm.Message{
		Role:    "user",
		Content: question,
	})

	return messages
}
