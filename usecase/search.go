package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
	"github.com/hanifwidyanto/kirana/internal/prompt"
	"github.com/hanifwidyanto/kirana/internal/retrieval"
)

const searchCandidates = 8

// SearchService answers free-text questions about the portfolio using
// retrieval-augmented generation, degrading to a substring filter over the
// corpus when the pipeline fails.
type SearchService struct {
	gateway  repositories.CompletionGateway
	pipeline *retrieval.Pipeline
	corpus   entities.Corpus
	logger   *zap.Logger
}

func NewSearchService(gateway repositories.CompletionGateway, pipeline *retrieval.Pipeline, corpus entities.Corpus, logger *zap.Logger) *SearchService {
	return &SearchService{gateway: gateway, pipeline: pipeline, corpus: corpus, logger: logger}
}

// Answer returns a generated answer string for the query.
func (s *SearchService) Answer(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query is required")
	}

	docs, err := s.pipeline.Search(ctx, query, searchCandidates)
	if err != nil {
		s.logger.Warn("Retrieval failed, falling back to substring search",
			zap.String("query", query),
			zap.Error(err))
		docs = retrieval.SubstringFilter(s.corpus, query)
	}

	if len(docs) == 0 {
		return "I couldn't find anything in the portfolio matching that. Try different wording?", nil
	}

	p := prompt.BuildSearchPrompt(query, docs)
	answer, err := s.gateway.Complete(ctx, repositories.CompletionRequest{
		System:      p.System,
		User:        p.User,
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Error("Search answer generation failed", zap.Error(err))
		return listingAnswer(docs), nil
	}
	return answer, nil
}

// Matches returns the raw candidate list for the query, using the same
// degradation path as Answer.
func (s *SearchService) Matches(ctx context.Context, query string) []entities.RetrievedDocument {
	docs, err := s.pipeline.Search(ctx, query, searchCandidates)
	if err != nil {
		return retrieval.SubstringFilter(s.corpus, query)
	}
	return docs
}

// listingAnswer renders the candidates as a plain listing when answer
// generation is unavailable.
func listingAnswer(docs []entities.RetrievedDocument) string {
	var sb strings.Builder
	sb.WriteString("Here is what matches in the portfolio:\n")
	for _, doc := range docs {
		sb.WriteString("- ")
		if text := doc.Metadata["text"]; text != "" {
			sb.WriteString(text)
		} else {
			sb.WriteString(doc.Identifier)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
