package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
)

// OpenAIConfig holds configuration for the OpenAI gateway.
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	SpeechModel    string
	EmbeddingModel string
	Timeout        time.Duration
}

// OpenAIGateway implements the CompletionGateway interface against the
// OpenAI API: chat completions for text mode, the speech endpoint for
// synthesis, and the embeddings endpoint for vectors.
type OpenAIGateway struct {
	client         *openai.Client
	logger         *zap.Logger
	model          string
	speechModel    string
	embeddingModel string
	timeout        time.Duration
}

var _ repositories.CompletionGateway = (*OpenAIGateway)(nil)

// NewOpenAIGateway creates a new OpenAI-backed gateway.
func NewOpenAIGateway(cfg OpenAIConfig, logger *zap.Logger) (*OpenAIGateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	speechModel := cfg.SpeechModel
	if speechModel == "" {
		speechModel = string(openai.TTSModel1)
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = string(openai.SmallEmbedding3)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIGateway{
		client:         openai.NewClientWithConfig(clientConfig),
		logger:         logger,
		model:          model,
		speechModel:    speechModel,
		embeddingModel: embeddingModel,
		timeout:        timeout,
	}, nil
}

// Complete runs a text-mode completion.
func (g *OpenAIGateway) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := req.Model
	if model == "" {
		model = g.model
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.System},
	}
	for _, turn := range req.History {
		role := openai.ChatMessageRoleUser
		if turn.Role == entities.TurnRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if req.JSONResponse {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var resp openai.ChatCompletionResponse
	err := g.withRetry(ctx, "chat completion", func() error {
		var callErr error
		resp, callErr = g.client.CreateChatCompletion(ctx, chatReq)
		return callErr
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", repositories.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// Synthesize converts text to spoken audio. When no explicit voice is given
// one is chosen deterministically from the request locale.
func (g *OpenAIGateway) Synthesize(ctx context.Context, req repositories.SpeechRequest) ([]byte, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := req.Model
	if model == "" {
		model = g.speechModel
	}
	voice := openai.SpeechVoice(req.Voice)
	if voice == "" {
		voice = VoiceForLocale(req.Locale)
	}

	g.logger.Debug("Synthesizing speech",
		zap.Int("textLength", len(req.Text)),
		zap.String("voice", string(voice)))

	var audio []byte
	err := g.withRetry(ctx, "speech synthesis", func() error {
		stream, callErr := g.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
			Model: openai.SpeechModel(model),
			Input: req.Text,
			Voice: voice,
		})
		if callErr != nil {
			return callErr
		}
		defer stream.Close()
		audio, callErr = io.ReadAll(stream)
		return callErr
	})
	if err != nil {
		return nil, classify(err)
	}

	if len(audio) == 0 {
		return nil, repositories.ErrEmptyCompletion
	}
	return audio, nil
}

// Embed computes the embedding vector for a text.
func (g *OpenAIGateway) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var resp openai.EmbeddingResponse
	err := g.withRetry(ctx, "embedding", func() error {
		var callErr error
		resp, callErr = g.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{text},
			Model: openai.EmbeddingModel(g.embeddingModel),
		})
		return callErr
	})
	if err != nil {
		return nil, classify(err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, repositories.ErrEmptyCompletion
	}
	return resp.Data[0].Embedding, nil
}

// withRetry runs fn, retrying exactly once on a transient transport failure.
// Timeouts and API-level rejections are not retried.
func (g *OpenAIGateway) withRetry(ctx context.Context, op string, fn func() error) error {
	err := fn()
	if err == nil || !transient(err) || ctx.Err() != nil {
		return err
	}

	g.logger.Warn("Transient gateway failure, retrying once",
		zap.String("operation", op),
		zap.Error(err))
	return fn()
}

// transient reports whether err looks like a recoverable transport failure.
func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500
	}
	// Anything else is a network-level failure.
	return true
}

// classify translates a transport error into the gateway error taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return repositories.ErrGatewayTimeout
	}
	return fmt.Errorf("generation service call failed: %w", err)
}
