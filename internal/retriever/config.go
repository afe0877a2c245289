package retriever

import (
	"os"
	"strconv"
)

// loads retrieval configuration from environment variables
func loadRetrieverConfig() *RetrieverConfig {
	topK := defaultTopK

	if topKStr := os.Getenv("RETRIEVAL_TOP_K"); topKStr != "" {
		if val, err := strconv.Atoi(topKStr); err == nil && val > 0 {
			topK = val
		}
	}

	return &RetrieverConfig{TopK: topK}
}
