package vector

import (
	"context"
	"errors"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
)

// ErrDisabled is returned by DisabledStore for every operation.
var ErrDisabled = errors.New("vector store is not configured")

// DisabledStore stands in when no vector index is configured. Every call
// fails with ErrDisabled, which pushes search onto its substring fallback.
type DisabledStore struct{}

var _ repositories.VectorStore = DisabledStore{}

func (DisabledStore) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	return ErrDisabled
}

func (DisabledStore) Query(ctx context.Context, vector []float32, k int) ([]entities.RetrievedDocument, error) {
	return nil, ErrDisabled
}
