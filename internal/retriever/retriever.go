package retriever

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"codeberg.org/policydesk/server/internal/llm"
)

// creates a retriever over an existing connection pool
// top-k comes from RETRIEVAL_TOP_K, defaulting to 4
func New(pool *pgxpool.Pool, embedder llm.Embedder) *Client {
	config := loadRetrieverConfig()

	return &Client{
		pool:     pool,
		embedder: embedder,
		topK:     config.TopK,
	}
}

// returns the configured top-k retrieval count
func (c *Client) TopK() int {
	return c.topK
}

// Search embeds the question and returns the top-k most similar policy chunks
func (c *Client) Search(ctx context.Context, question string) ([]SearchResult, error) {
	return c.SearchK(ctx, question, c.topK)
}

// SearchK performs a vector similarity search on policy_embeddings
func (c *Client) SearchK(ctx context.Context, question string, topK int) ([]SearchResult, error) {
	// generate embedding for the question
	embedding, err := c.embedder.GenerateEmbedding(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	query := `
		SELECT
			id::text,
			source,
			page,
			content,
			similarity
		FROM search_policies($1, $2)
	`

	rows, err := c.pool.Query(ctx, query, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var results []SearchResult

	for rows.Next() {
		var result SearchResult
		err := rows.Scan(
			&result.ID,
			&result.Source,
			&result.Page,
			&result.Content,
			&result.Similarity,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}
