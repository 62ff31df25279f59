package repositories

import (
	"context"
	"errors"

	"github.com/hanifwidyanto/kirana/domain/entities"
)

// Gateway error taxonomy. Callers decide per feature whether to surface a
// failure or mask it with a user-facing fallback; raw transport errors never
// reach the UI layer.
var (
	// ErrEmptyCompletion means the remote service answered but produced no
	// usable content.
	ErrEmptyCompletion = errors.New("empty completion from generation service")
	// ErrGatewayTimeout means the call exceeded its configured time bound.
	ErrGatewayTimeout = errors.New("generation service call timed out")
)

// CompletionRequest describes a text-mode generation call.
type CompletionRequest struct {
	Model       string
	System      string
	User        string
	History     []entities.ConversationTurn
	Temperature float32
	// JSONResponse asks the provider to emit a machine-parseable JSON object.
	JSONResponse bool
}

// SpeechRequest describes a speech-synthesis call. When Voice is empty the
// gateway selects one from Locale via its locale-to-voice table.
type SpeechRequest struct {
	Model  string
	Text   string
	Voice  string
	Locale string
}

// CompletionGateway is the uniform call contract to the remote generation
// service in its three modes: text completion, speech synthesis, and
// embedding vectors.
type CompletionGateway interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}
