package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// TextProvider selects the backend for text-mode completions.
type TextProvider string

const (
	ProviderOpenAI TextProvider = "openai"
	ProviderGemini TextProvider = "gemini"
)

// Config holds all server configuration, parsed from the environment.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	JWTSecret string `env:"JWT_SECRET,required"`

	// Text completion provider selection. Speech and embedding modes always
	// run through OpenAI.
	TextProvider TextProvider `env:"TEXT_PROVIDER" envDefault:"openai"`

	// OpenAI
	OpenAIAPIKey         string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL        string `env:"OPENAI_BASE_URL"`
	OpenAIModel          string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAISpeechModel    string `env:"OPENAI_SPEECH_MODEL" envDefault:"tts-1"`
	OpenAIEmbeddingModel string `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`

	// Gemini
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	// Every gateway call runs under this bound so a stuck upstream cannot
	// leave the caller loading indefinitely.
	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"30s"`

	// Mongo
	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"kirana"`

	// Vector store (Pinecone-compatible REST endpoint)
	VectorIndexURL string `env:"VECTOR_INDEX_URL"`
	VectorAPIKey   string `env:"VECTOR_API_KEY"`

	// Playback
	ChunkMaxChars int `env:"PLAYBACK_CHUNK_MAX_CHARS" envDefault:"4000"`

	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.TextProvider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown text provider: %s", c.TextProvider)
	}
	if c.TextProvider == ProviderGemini && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when TEXT_PROVIDER=gemini")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.ChunkMaxChars <= 0 {
		return fmt.Errorf("chunk max chars must be positive, got %d", c.ChunkMaxChars)
	}
	if c.GatewayTimeout <= 0 {
		return fmt.Errorf("gateway timeout must be positive, got %s", c.GatewayTimeout)
	}
	return nil
}
