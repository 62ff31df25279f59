package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/repositories"
	"github.com/hanifwidyanto/kirana/internal/history"
	"github.com/hanifwidyanto/kirana/internal/prompt"
)

// apologyMessage is the user-facing fallback when generation fails on a
// surface that degrades instead of erroring.
const apologyMessage = "I'm having trouble finding the right words right now. Please try again in a moment."

// AffirmationService generates personalized affirmations.
type AffirmationService struct {
	gateway repositories.CompletionGateway
	history *history.Service
	logger  *zap.Logger
}

func NewAffirmationService(gateway repositories.CompletionGateway, history *history.Service, logger *zap.Logger) *AffirmationService {
	return &AffirmationService{gateway: gateway, history: history, logger: logger}
}

// Generate produces a fresh affirmation for the user, steering the generator
// away from text already present in their interaction history.
func (s *AffirmationService) Generate(ctx context.Context, userID, locale string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user ID is required")
	}

	// One consistent snapshot of the history per request.
	interactions, err := s.history.List(ctx, userID, "")
	if err != nil {
		s.logger.Warn("Failed to load interaction history, generating without it",
			zap.String("user_id", userID),
			zap.Error(err))
		interactions = nil
	}

	p := prompt.BuildAffirmationPrompt(locale, prompt.HistoryFromInteractions(interactions))

	raw, err := s.gateway.Complete(ctx, repositories.CompletionRequest{
		System:       p.System,
		User:         p.User,
		Temperature:  0.9,
		JSONResponse: true,
	})
	if err != nil {
		s.logger.Error("Affirmation generation failed", zap.Error(err))
		return apologyMessage, nil
	}

	affirmation, structured := prompt.ParseJSONField(raw, "affirmation")
	if !structured {
		s.logger.Warn("Affirmation response was not valid JSON, using raw text")
	}
	return affirmation, nil
}
