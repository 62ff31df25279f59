package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Disposition is the user's recorded reaction to a piece of generated content.
type Disposition string

const (
	DispositionLiked    Disposition = "liked"
	DispositionDisliked Disposition = "disliked"
	DispositionFavorite Disposition = "favorite"
)

// ValidDisposition reports whether d is one of the three known disposition values.
func ValidDisposition(d Disposition) bool {
	switch d {
	case DispositionLiked, DispositionDisliked, DispositionFavorite:
		return true
	}
	return false
}

// Interaction is a single recorded reaction to generated content.
// Records are immutable once created; removing a reaction deletes the record.
type Interaction struct {
	ID          string      `json:"id" bson:"_id"`
	UserID      string      `json:"user_id" bson:"user_id"`
	Content     string      `json:"content" bson:"content"`
	Disposition Disposition `json:"disposition" bson:"disposition"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}

// NewInteraction creates an interaction record for a user reaction.
func NewInteraction(userID, content string, disposition Disposition) *Interaction {
	return &Interaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Content:     content,
		Disposition: disposition,
		CreatedAt:   time.Now(),
	}
}

// Validate validates the interaction data.
func (i *Interaction) Validate() error {
	if i.UserID == "" {
		return errors.New("user_id is required")
	}
	if i.Content == "" {
		return errors.New("content is required")
	}
	if !ValidDisposition(i.Disposition) {
		return errors.New("invalid disposition")
	}
	return nil
}

// TurnRole identifies the author of a conversation turn.
type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// ConversationTurn is one message in an ephemeral chat exchange. Turns are
// held in memory for the duration of a session and never persisted here.
type ConversationTurn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}
