package retriever

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/policydesk/server/internal/llm"
)

type Client struct {
	pool     *pgxpool.Pool
	embedder llm.Embedder
	topK     int
}

// a scored policy passage returned by vector search
type SearchResult struct {
	ID         string
	Source     string // document file name
	Page       int    // 1-based page number
	Content    string
	Similarity float32
}

type RetrieverConfig struct {
	TopK int
}
