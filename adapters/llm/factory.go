package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/repositories"
	"github.com/hanifwidyanto/kirana/internal/config"
)

// textCompleter is the text-mode slice of the gateway contract.
type textCompleter interface {
	Complete(ctx context.Context, req repositories.CompletionRequest) (string, error)
}

// splitGateway routes text completions to an alternative provider while
// speech and embedding modes stay on OpenAI.
type splitGateway struct {
	*OpenAIGateway
	text textCompleter
}

func (g *splitGateway) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	return g.text.Complete(ctx, req)
}

// NewGateway builds the completion gateway for the configured providers.
func NewGateway(cfg *config.Config, logger *zap.Logger) (repositories.CompletionGateway, error) {
	oa, err := NewOpenAIGateway(OpenAIConfig{
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		Model:          cfg.OpenAIModel,
		SpeechModel:    cfg.OpenAISpeechModel,
		EmbeddingModel: cfg.OpenAIEmbeddingModel,
		Timeout:        cfg.GatewayTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	if cfg.TextProvider != config.ProviderGemini {
		return oa, nil
	}

	gm, err := NewGeminiCompleter(GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GatewayTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Using Gemini for text completions",
		zap.String("model", cfg.GeminiModel))
	return &splitGateway{OpenAIGateway: oa, text: gm}, nil
}
