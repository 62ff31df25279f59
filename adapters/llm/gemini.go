package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
)

// GeminiConfig holds configuration for the Gemini text completer.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiCompleter implements text-mode completions using Google's Gemini
// API. Speech and embedding modes stay on the OpenAI gateway.
type GeminiCompleter struct {
	client  *genai.Client
	logger  *zap.Logger
	model   string
	timeout time.Duration
}

// NewGeminiCompleter creates a new Gemini text completer.
func NewGeminiCompleter(cfg GeminiConfig, logger *zap.Logger) (*GeminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &GeminiCompleter{
		client:  client,
		logger:  logger,
		model:   model,
		timeout: timeout,
	}, nil
}

// geminiRole maps a conversation turn role onto the Gemini content role.
func geminiRole(role entities.TurnRole) genai.Role {
	if role == entities.TurnRoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Complete runs a text-mode completion against Gemini.
func (g *GeminiCompleter) Complete(ctx context.Context, req repositories.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var contents []*genai.Content
	contents = append(contents, genai.NewContentFromText(req.System, genai.RoleUser))
	for _, turn := range req.History {
		contents = append(contents, genai.NewContentFromText(turn.Content, geminiRole(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(req.User, genai.RoleUser))

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.JSONResponse {
		genConfig.ResponseMIMEType = "application/json"
	}

	model := req.Model
	if model == "" {
		model = g.model
	}

	response, err := g.client.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		return "", classify(err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", repositories.ErrEmptyCompletion
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", repositories.ErrEmptyCompletion
	}
	return text.String(), nil
}
