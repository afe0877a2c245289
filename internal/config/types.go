package config

type Config struct {
	OpenAIKey     string
	AnthropicKey  string
	DBConnString  string
	RedisURL      string
	Environment   string
	DataDirectory string
}

type Flags struct {
	Path  string
	Clear bool
}
