package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/policydesk/server/internal/chunker"
	"codeberg.org/policydesk/server/internal/config"
	"codeberg.org/policydesk/server/internal/llm"
	"codeberg.org/policydesk/server/internal/loader"
	"codeberg.org/policydesk/server/internal/logger"
	"codeberg.org/policydesk/server/internal/storage"
)

// loads, chunks and embeds policy PDFs from the specified path
func IngestPolicies(cfg *config.Config, db *pgxpool.Pool, flags config.Flags) error {
	ctx := context.Background()
	logger.Info("starting policy ingestion", "path", flags.Path, "clear", flags.Clear)

	// use shared connection pool
	storageClient := storage.NewClientFromPool(db)
	defer storageClient.Close() // no-op since we don't own the pool

	// clear existing chunks if requested
	if flags.Clear {
		logger.Info("clearing existing policy chunks")

		if err := storageClient.ClearAllChunks(ctx); err != nil {
			return fmt.Errorf("failed to clear existing chunks: %w", err)
		}

		logger.Info("cleared existing chunks")
	}

	// load all PDF files in directory
	logger.Info("loading policy documents", "path", flags.Path)
	pages, errors := loader.LoadDirectory(flags.Path)

	if len(errors) > 0 {
		logger.Warn("encountered errors while loading", "error_count", len(errors))

		for _, err := range errors {
			logger.Warn("loading error", "error", err)
		}
	}

	if len(pages) == 0 {
		return fmt.Errorf("no pages loaded from policy documents")
	}

	logger.Info("loaded pages", "count", len(pages))

	// split pages into overlapping chunks
	chunks := chunker.SplitPages(pages, chunker.DefaultOptions())

	if len(chunks) == 0 {
		return fmt.Errorf("no chunks generated from policy documents")
	}

	logger.Info("generated chunks", "count", len(chunks))

	// create OpenAI embedder
	embedder := llm.NewOpenAIEmbedder(llm.OpenAIConfig{
		APIKey: cfg.OpenAIKey,
		Model:  "text-embedding-3-small",
	})

	// generate embeddings for all chunks
	logger.Info("generating embeddings for chunks")
	texts := make([]string, len(chunks))

	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}

	logger.Info("generated embeddings", "count", len(embeddings))

	// insert chunks with embeddings into database
	logger.Info("inserting chunks into database")
	if err := storageClient.InsertChunksBatch(ctx, chunks, embeddings); err != nil {
		return fmt.Errorf("failed to insert chunks: %w", err)
	}

	// verify insertion
	count, err := storageClient.GetChunkCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify chunk count: %w", err)
	}

	logger.Info("successfully ingested policies",
		"chunks_inserted", len(chunks),
		"total_chunks", count,
	)

	return nil
}
