package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
)

// Indexer embeds every corpus record and upserts it into the vector store.
// Runs out-of-band relative to the live request path; re-running for the
// same identifier overwrites the prior vector and metadata.
type Indexer struct {
	gateway repositories.CompletionGateway
	store   repositories.VectorStore
	logger  *zap.Logger
}

// NewIndexer creates a new corpus indexer.
func NewIndexer(gateway repositories.CompletionGateway, store repositories.VectorStore, logger *zap.Logger) *Indexer {
	return &Indexer{gateway: gateway, store: store, logger: logger}
}

// Ingest indexes the whole corpus. It stops at the first failure so a broken
// ingestion run is visible rather than silently partial.
func (i *Indexer) Ingest(ctx context.Context, corpus entities.Corpus) (int, error) {
	count := 0
	for _, record := range corpus.All() {
		id := record.DocumentID()
		text := record.SearchText()

		vector, err := i.gateway.Embed(ctx, text)
		if err != nil {
			return count, fmt.Errorf("failed to embed %s: %w", id, err)
		}

		metadata := map[string]string{"text": text}
		if err := i.store.Upsert(ctx, id, vector, metadata); err != nil {
			return count, fmt.Errorf("failed to upsert %s: %w", id, err)
		}

		count++
		i.logger.Info("Indexed record", zap.String("id", id))
	}
	return count, nil
}
