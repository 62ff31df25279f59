package repositories

import (
	"context"

	"github.com/hanifwidyanto/kirana/domain/entities"
)

// VectorStore abstracts the external vector database. Upsert overwrites any
// prior vector and metadata stored under the same identifier.
type VectorStore interface {
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error
	Query(ctx context.Context, vector []float32, k int) ([]entities.RetrievedDocument, error)
}
