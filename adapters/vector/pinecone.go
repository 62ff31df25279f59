package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
)

const defaultRequestTimeout = 15 * time.Second

// PineconeConfig holds configuration for the Pinecone index adapter.
// Required fields:
// - IndexURL: The base URL of the index host
// - APIKey: Your Pinecone API key
type PineconeConfig struct {
	IndexURL string
	APIKey   string
	Timeout  time.Duration
}

// PineconeStore implements VectorStore against a Pinecone-compatible REST
// index. The wire schema stays owned by the provider; this adapter only
// speaks the upsert and query operations.
type PineconeStore struct {
	indexURL string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

var _ repositories.VectorStore = (*PineconeStore)(nil)

type upsertVector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors []upsertVector `json:"vectors"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryMatch struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

type queryResponse struct {
	Matches []queryMatch `json:"matches"`
}

// NewPineconeStore creates a new Pinecone index adapter.
func NewPineconeStore(config PineconeConfig, logger *zap.Logger) (*PineconeStore, error) {
	if config.IndexURL == "" {
		return nil, fmt.Errorf("vector index URL is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("vector API key is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}

	return &PineconeStore{
		indexURL: config.IndexURL,
		apiKey:   config.APIKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}, nil
}

// Upsert inserts or overwrites the vector stored under id.
func (s *PineconeStore) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	if id == "" {
		return fmt.Errorf("vector ID cannot be empty")
	}
	if len(vector) == 0 {
		return fmt.Errorf("vector cannot be empty")
	}

	payload := upsertRequest{
		Vectors: []upsertVector{{ID: id, Values: vector, Metadata: metadata}},
	}

	if err := s.post(ctx, "/vectors/upsert", payload, nil); err != nil {
		return fmt.Errorf("failed to upsert vector %s: %w", id, err)
	}

	s.logger.Debug("Upserted vector",
		zap.String("id", id),
		zap.Int("dimensions", len(vector)))
	return nil
}

// Query returns up to k nearest neighbors for the vector.
func (s *PineconeStore) Query(ctx context.Context, vector []float32, k int) ([]entities.RetrievedDocument, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector cannot be empty")
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	payload := queryRequest{Vector: vector, TopK: k, IncludeMetadata: true}

	var resp queryResponse
	if err := s.post(ctx, "/query", payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	docs := make([]entities.RetrievedDocument, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		docs = append(docs, entities.RetrievedDocument{
			Identifier: match.ID,
			Score:      match.Score,
			Metadata:   match.Metadata,
		})
	}
	return docs, nil
}

func (s *PineconeStore) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.indexURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("index returned error %d: %s", resp.StatusCode, string(errorBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
