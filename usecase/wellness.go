package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
	"github.com/hanifwidyanto/kirana/internal/prompt"
)

// WellnessService runs the wellness guide chat.
type WellnessService struct {
	gateway repositories.CompletionGateway
	logger  *zap.Logger
}

func NewWellnessService(gateway repositories.CompletionGateway, logger *zap.Logger) *WellnessService {
	return &WellnessService{gateway: gateway, logger: logger}
}

// Chat answers one visitor message. The conversation history is ephemeral
// and supplied by the caller; nothing is persisted here.
func (s *WellnessService) Chat(ctx context.Context, message string, turns []entities.ConversationTurn, locale string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is required")
	}

	p := prompt.BuildWellnessPrompt(message, locale)

	reply, err := s.gateway.Complete(ctx, repositories.CompletionRequest{
		System:      p.System,
		User:        p.User,
		History:     turns,
		Temperature: 0.7,
	})
	if err != nil {
		s.logger.Error("Wellness chat generation failed", zap.Error(err))
		return apologyMessage, nil
	}
	return reply, nil
}
