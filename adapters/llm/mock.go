package llm

import (
	"context"
	"sync"

	"github.com/hanifwidyanto/kirana/domain/repositories"
)

// MockGateway is a configurable in-memory CompletionGateway for tests and
// local development without API keys.
type MockGateway struct {
	mu sync.Mutex

	CompleteResponse   string
	CompleteErr        error
	SynthesizeResponse []byte
	SynthesizeErr      error
	EmbedResponse      []float32
	EmbedErr           error

	CompleteCalls   int
	SynthesizeCalls int
	EmbedCalls      int

	LastCompletion repositories.CompletionRequest
	LastSpeech     repositories.SpeechRequest
	LastEmbedText  string
}

var _ repositories.CompletionGateway = (*MockGateway)(nil)

func (m *MockGateway) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteCalls++
	m.LastCompletion = req
	return m.CompleteResponse, m.CompleteErr
}

func (m *MockGateway) Synthesize(ctx context.Context, req repositories.SpeechRequest) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SynthesizeCalls++
	m.LastSpeech = req
	return m.SynthesizeResponse, m.SynthesizeErr
}

func (m *MockGateway) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmbedCalls++
	m.LastEmbedText = text
	return m.EmbedResponse, m.EmbedErr
}
