package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
	"github.com/hanifwidyanto/kirana/internal/prompt"
)

// ErrProjectNotFound means the requested project is not in the catalog.
// Resolution failure is fatal to the request; there is no fallback.
var ErrProjectNotFound = errors.New("project not found")

// DeepDiveService generates case studies for catalogued projects. The
// project identifier is resolved against the local corpus before any
// generation call is made.
type DeepDiveService struct {
	gateway repositories.CompletionGateway
	corpus  entities.Corpus
	logger  *zap.Logger
}

func NewDeepDiveService(gateway repositories.CompletionGateway, corpus entities.Corpus, logger *zap.Logger) *DeepDiveService {
	return &DeepDiveService{gateway: gateway, corpus: corpus, logger: logger}
}

// Generate resolves the project and writes its case study as an HTML
// fragment.
func (s *DeepDiveService) Generate(ctx context.Context, projectKey string) (string, error) {
	if strings.TrimSpace(projectKey) == "" {
		return "", fmt.Errorf("project identifier is required")
	}

	project, ok := s.corpus.ProjectBySlug(projectKey)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrProjectNotFound, projectKey)
	}

	p := prompt.BuildDeepDivePrompt(project)

	html, err := s.gateway.Complete(ctx, repositories.CompletionRequest{
		System:      p.System,
		User:        p.User,
		Temperature: 0.7,
	})
	if err != nil {
		s.logger.Error("Deep dive generation failed",
			zap.String("project", project.Slug),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate deep dive: %w", err)
	}
	return html, nil
}
