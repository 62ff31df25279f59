package repositories

import (
	"context"

	"github.com/hanifwidyanto/kirana/domain/entities"
)

// InteractionRepository defines data access for interaction records.
// Records are append-only; removing a reaction deletes the record.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *entities.Interaction) error
	// Find returns the active record for the (user, content, disposition)
	// triple, or nil when none exists.
	Find(ctx context.Context, userID, content string, disposition entities.Disposition) (*entities.Interaction, error)
	Delete(ctx context.Context, id string) error
	// ListByUser returns the user's interactions ordered by creation time,
	// newest first. An empty disposition matches all dispositions.
	ListByUser(ctx context.Context, userID string, disposition entities.Disposition) ([]*entities.Interaction, error)
}
