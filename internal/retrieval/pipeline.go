package retrieval

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
)

// Pipeline runs semantic retrieval: embed the query, fetch nearest indexed
// documents, and deduplicate by identifier.
type Pipeline struct {
	gateway repositories.CompletionGateway
	store   repositories.VectorStore
	logger  *zap.Logger
}

// NewPipeline creates a new retrieval pipeline.
func NewPipeline(gateway repositories.CompletionGateway, store repositories.VectorStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{gateway: gateway, store: store, logger: logger}
}

// Search returns up to k deduplicated candidates for the query, ordered by
// the store's relevance ranking. The result may hold fewer than k entries.
func (p *Pipeline) Search(ctx context.Context, query string, k int) ([]entities.RetrievedDocument, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	vector, err := p.gateway.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := p.store.Query(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query vector store: %w", err)
	}

	deduped := Dedupe(matches)
	p.logger.Debug("Retrieval complete",
		zap.Int("requested", k),
		zap.Int("matches", len(matches)),
		zap.Int("deduped", len(deduped)))
	return deduped, nil
}

// Dedupe collapses repeated identifiers, keeping the first occurrence and
// preserving the original relative order.
func Dedupe(docs []entities.RetrievedDocument) []entities.RetrievedDocument {
	seen := make(map[string]bool, len(docs))
	out := make([]entities.RetrievedDocument, 0, len(docs))
	for _, doc := range docs {
		if seen[doc.Identifier] {
			continue
		}
		seen[doc.Identifier] = true
		out = append(out, doc)
	}
	return out
}

// SubstringFilter is the degraded search used when the pipeline fails: a
// case-insensitive substring match over the corpus record texts.
func SubstringFilter(corpus entities.Corpus, query string) []entities.RetrievedDocument {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var out []entities.RetrievedDocument
	for _, record := range corpus.All() {
		text := record.SearchText()
		if strings.Contains(strings.ToLower(text), needle) {
			out = append(out, entities.RetrievedDocument{
				Identifier: record.DocumentID(),
				Metadata:   map[string]string{"text": text},
			})
		}
	}
	return out
}
