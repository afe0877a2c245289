package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/policydesk/server/internal/assistant"
	"codeberg.org/policydesk/server/internal/config"
	"codeberg.org/policydesk/server/internal/llm"
	"codeberg.org/policydesk/server/internal/retriever"
	"codeberg.org/policydesk/server/internal/storage"
)

// creates and configures all service clients
func InitializeServices(_ *config.Config, db *pgxpool.Pool) (*Services, error) {
	llmClient, err := llm.NewLLM(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	retrieverClient := retriever.New(db, llmClient)
	storageClient := storage.NewClientFromPool(db)
	assistantClient := assistant.New(retrieverClient, llmClient)

	return &Services{
		Assistant: assistantClient,
		LLM:       llmClient,
		Retriever: retrieverClient,
		Storage:   storageClient,
	}, nil
}
