package history

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
)

// Service owns all writes to the personalization history. Orchestrators read
// through List as a snapshot; the UI layer toggles dispositions here.
type Service struct {
	repo   repositories.InteractionRepository
	logger *zap.Logger

	// Serializes toggles so concurrent requests for the same triple cannot
	// both observe "no record" and insert duplicates.
	mu sync.Mutex
}

// NewService creates a new history service.
func NewService(repo repositories.InteractionRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Toggle flips the disposition for (user, content). Toggling an existing
// record removes it; toggling a missing one creates it. The returned flag
// reports whether the disposition is active after the call.
func (s *Service) Toggle(ctx context.Context, userID, content string, disposition entities.Disposition) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("user ID is required")
	}
	if content == "" {
		return false, fmt.Errorf("content is required")
	}
	if !entities.ValidDisposition(disposition) {
		return false, fmt.Errorf("invalid disposition: %s", disposition)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.Find(ctx, userID, content, disposition)
	if err != nil {
		return false, fmt.Errorf("failed to look up interaction: %w", err)
	}

	if existing != nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return false, fmt.Errorf("failed to remove interaction: %w", err)
		}
		s.logger.Info("Interaction removed",
			zap.String("user_id", userID),
			zap.String("disposition", string(disposition)))
		return false, nil
	}

	interaction := entities.NewInteraction(userID, content, disposition)
	if err := s.repo.Create(ctx, interaction); err != nil {
		return false, fmt.Errorf("failed to record interaction: %w", err)
	}
	s.logger.Info("Interaction recorded",
		zap.String("user_id", userID),
		zap.String("disposition", string(disposition)))
	return true, nil
}

// List returns the user's interactions, newest first. An empty disposition
// matches all dispositions.
func (s *Service) List(ctx context.Context, userID string, disposition entities.Disposition) ([]*entities.Interaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if disposition != "" && !entities.ValidDisposition(disposition) {
		return nil, fmt.Errorf("invalid disposition: %s", disposition)
	}
	return s.repo.ListByUser(ctx, userID, disposition)
}
