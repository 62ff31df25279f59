package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/repositories"
	"github.com/hanifwidyanto/kirana/internal/prompt"
)

// InsightService generates short technical insight articles.
type InsightService struct {
	gateway repositories.CompletionGateway
	logger  *zap.Logger
}

func NewInsightService(gateway repositories.CompletionGateway, logger *zap.Logger) *InsightService {
	return &InsightService{gateway: gateway, logger: logger}
}

// Generate returns an HTML fragment under the constrained tag allow-list
// declared in the prompt contract. No fallback is defined for this surface;
// upstream failures propagate for the handler to surface as a 500.
func (s *InsightService) Generate(ctx context.Context, topic, locale string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("topic is required")
	}

	p := prompt.BuildInsightPrompt(topic, locale)

	html, err := s.gateway.Complete(ctx, repositories.CompletionRequest{
		System:      p.System,
		User:        p.User,
		Temperature: 0.6,
	})
	if err != nil {
		s.logger.Error("Insight generation failed",
			zap.String("topic", topic),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate insight: %w", err)
	}
	return html, nil
}
