package api

// TokenRequest represents the request payload for issuing a session token
type TokenRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Locale string `json:"locale,omitempty"`
}

// TokenResponse represents the response payload for a session token
type TokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// SearchResponse represents the generated answer for a search query
type SearchResponse struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// TranscribeRequest represents base64-encoded audio to transcribe
type TranscribeRequest struct {
	Audio      string `json:"audio" validate:"required"`
	SampleRate int    `json:"sample_rate,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	Language   string `json:"language,omitempty"`
}

// TranscribeResponse represents the recognized transcript
type TranscribeResponse struct {
	Text string `json:"text"`
}

// AffirmationRequest represents the request payload for an affirmation
type AffirmationRequest struct {
	Locale string `json:"locale,omitempty"`
}

// AffirmationResponse represents a generated affirmation
type AffirmationResponse struct {
	Affirmation string `json:"affirmation"`
}

// ChatTurn is one prior turn of a wellness conversation
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// WellnessChatRequest represents a wellness conversation message
type WellnessChatRequest struct {
	Message string     `json:"message" validate:"required"`
	History []ChatTurn `json:"history,omitempty"`
	Locale  string     `json:"locale,omitempty"`
}

// WellnessChatResponse represents the companion's reply
type WellnessChatResponse struct {
	Reply string `json:"reply"`
}

// InsightRequest represents the request payload for a tech insight
type InsightRequest struct {
	Topic  string `json:"topic" validate:"required"`
	Locale string `json:"locale,omitempty"`
}

// InsightResponse carries the generated insight HTML fragment
type InsightResponse struct {
	HTML string `json:"html"`
}

// DeepDiveRequest names the portfolio project to explore
type DeepDiveRequest struct {
	Project string `json:"project" validate:"required"`
}

// DeepDiveResponse carries the generated HTML fragment
type DeepDiveResponse struct {
	Project string `json:"project"`
	HTML    string `json:"html"`
}

// ToggleInteractionRequest flips a disposition on a piece of content
type ToggleInteractionRequest struct {
	Content     string `json:"content" validate:"required"`
	Disposition string `json:"disposition" validate:"required"`
}

// ToggleInteractionResponse reports whether the disposition is now active
type ToggleInteractionResponse struct {
	Active bool `json:"active"`
}

// InteractionView is one stored interaction in a listing
type InteractionView struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	Disposition string `json:"disposition"`
	CreatedAt   string `json:"created_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
