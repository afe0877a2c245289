package llm

import "context"

// represents different model providers
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// generates answer text from a system prompt and conversation messages
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
}

// combines embedding generation and text generation
type LLM interface {
	Embedder
	TextGenerator
}

// a single conversation turn sent to the generator
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// input for text generation
type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int // optional override, falls back to config
}

// token accounting reported by the provider
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// output of text generation
type TextGenerationResponse struct {
	Text  string
	Usage Usage
}

// holds configuration for LLM initialization
type Config struct {
	// embedder configuration
	EmbedderProvider Provider
	EmbedderAPIKey   string
	EmbedderModel    string // e.g., "text-embedding-3-small"

	// generator configuration
	GeneratorProvider    Provider
	GeneratorAPIKey      string
	GeneratorModel       string // e.g., "claude-sonnet-4-20250514"
	GeneratorMaxTokens   int
	GeneratorTemperature float32
}
