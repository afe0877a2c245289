package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	dbConnString := os.Getenv("DATABASE_URL")
	redisURL := os.Getenv("REDIS_URL")
	environment := os.Getenv("ENVIRONMENT")
	dataDir := os.Getenv("POLICY_DATA_DIR")

	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if anthropicKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
	}

	if dbConnString == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	if dataDir == "" {
		dataDir = "./data"
	}

	return &Config{
		OpenAIKey:     openaiKey,
		AnthropicKey:  anthropicKey,
		DBConnString:  dbConnString,
		RedisURL:      redisURL,
		Environment:   environment,
		DataDirectory: dataDir,
	}, nil
}
