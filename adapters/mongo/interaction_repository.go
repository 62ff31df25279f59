package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
)

type InteractionRepository struct {
	collection *mongo.Collection
}

// NewInteractionRepository creates a new MongoDB interaction repository.
func NewInteractionRepository(db *mongo.Database) repositories.InteractionRepository {
	return &InteractionRepository{
		collection: db.Collection("interactions"),
	}
}

// Create implements repositories.InteractionRepository
func (r *InteractionRepository) Create(ctx context.Context, interaction *entities.Interaction) error {
	if interaction == nil {
		return errors.New("interaction cannot be nil")
	}
	if err := interaction.Validate(); err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, interaction); err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}
	return nil
}

// Find implements repositories.InteractionRepository
func (r *InteractionRepository) Find(ctx context.Context, userID, content string, disposition entities.Disposition) (*entities.Interaction, error) {
	filter := bson.M{
		"user_id":     userID,
		"content":     content,
		"disposition": disposition,
	}

	var interaction entities.Interaction
	err := r.collection.FindOne(ctx, filter).Decode(&interaction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find interaction: %w", err)
	}
	return &interaction, nil
}

// Delete implements repositories.InteractionRepository
func (r *InteractionRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("interaction ID cannot be empty")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("interaction with ID %s not found", id)
	}
	return nil
}

// ListByUser implements repositories.InteractionRepository
func (r *InteractionRepository) ListByUser(ctx context.Context, userID string, disposition entities.Disposition) ([]*entities.Interaction, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	filter := bson.M{"user_id": userID}
	if disposition != "" {
		filter["disposition"] = disposition
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var interactions []*entities.Interaction
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, fmt.Errorf("failed to decode interactions: %w", err)
	}
	return interactions, nil
}
