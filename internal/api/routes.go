package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/domain/entities"
	"github.com/hanifwidyanto/kirana/domain/repositories"
	"github.com/hanifwidyanto/kirana/internal/auth"
	"github.com/hanifwidyanto/kirana/internal/history"
	"github.com/hanifwidyanto/kirana/internal/websocket"
	"github.com/hanifwidyanto/kirana/usecase"
)

// Dependencies carries everything the route handlers need.
type Dependencies struct {
	Auth         *auth.Manager
	Affirmations *usecase.AffirmationService
	Wellness     *usecase.WellnessService
	Insights     *usecase.InsightService
	DeepDives    *usecase.DeepDiveService
	Search       *usecase.SearchService
	History      *history.Service
	Transcriber  repositories.SpeechToText
	Playback     *websocket.PlaybackHandler
	Logger       *zap.Logger
}

type handler struct {
	deps Dependencies
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, deps Dependencies) {
	h := &handler{deps: deps}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "kirana-server",
		})
	})

	// API v1 routes
	v1 := e.Group("/api/v1")
	v1.POST("/auth/token", h.issueToken)
	v1.GET("/search", h.search)

	authed := v1.Group("", deps.Auth.Middleware())
	authed.POST("/transcribe", h.transcribe)
	authed.POST("/affirmations", h.affirmation)
	authed.POST("/wellness/chat", h.wellnessChat)
	authed.POST("/insights", h.insight)
	authed.POST("/deepdives", h.deepDive)
	authed.GET("/interactions", h.listInteractions)
	authed.POST("/interactions/toggle", h.toggleInteraction)

	// WebSocket playback endpoint. Browsers cannot set headers on the
	// upgrade request, so the token travels as a query parameter.
	e.GET("/ws/playback", func(c echo.Context) error {
		if _, err := deps.Auth.ValidateToken(c.QueryParam("token")); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		return deps.Playback.Handle(c)
	})
}

func (h *handler) issueToken(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "User ID is required",
		})
	}

	token, err := h.deps.Auth.GenerateToken(req.UserID, req.Locale, false)
	if err != nil {
		h.deps.Logger.Error("Failed to generate session token",
			zap.String("user_id", req.UserID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to generate session token",
		})
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token, UserID: req.UserID})
}

func (h *handler) search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_query",
			Message: "Query parameter q is required",
		})
	}

	answer, err := h.deps.Search.Answer(c.Request().Context(), query)
	if err != nil {
		h.deps.Logger.Error("Search failed", zap.String("query", query), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "search_failed",
			Message: "Search is temporarily unavailable",
		})
	}

	return c.JSON(http.StatusOK, SearchResponse{Query: query, Answer: answer})
}

func (h *handler) transcribe(c echo.Context) error {
	var req TranscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Audio == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Audio payload is required",
		})
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_audio",
			Message: "Audio payload must be base64 encoded",
		})
	}

	transcript, err := h.deps.Transcriber.TranscribeAudio(c.Request().Context(), audio, repositories.AudioConfig{
		SampleRate: req.SampleRate,
		Encoding:   req.Encoding,
		Language:   req.Language,
	})
	if err != nil {
		h.deps.Logger.Error("Transcription failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "transcription_failed",
			Message: "Could not transcribe the audio",
		})
	}

	return c.JSON(http.StatusOK, TranscribeResponse{Text: transcript})
}

func (h *handler) affirmation(c echo.Context) error {
	session, ok := auth.SessionFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var req AffirmationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	affirmation, err := h.deps.Affirmations.Generate(c.Request().Context(), session.UserID, resolveLocale(req.Locale, session))
	if err != nil {
		h.deps.Logger.Error("Affirmation generation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "generation_failed",
			Message: "Could not generate an affirmation",
		})
	}

	return c.JSON(http.StatusOK, AffirmationResponse{Affirmation: affirmation})
}

func (h *handler) wellnessChat(c echo.Context) error {
	session, ok := auth.SessionFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var req WellnessChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Message is required",
		})
	}

	turns := make([]entities.ConversationTurn, 0, len(req.History))
	for _, turn := range req.History {
		role := entities.TurnRole(turn.Role)
		if role != entities.TurnRoleUser && role != entities.TurnRoleAssistant {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_history",
				Message: "History roles must be user or assistant",
			})
		}
		turns = append(turns, entities.ConversationTurn{Role: role, Content: turn.Content})
	}

	reply, err := h.deps.Wellness.Chat(c.Request().Context(), req.Message, turns, resolveLocale(req.Locale, session))
	if err != nil {
		h.deps.Logger.Error("Wellness chat failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "chat_failed",
			Message: "Could not generate a reply",
		})
	}

	return c.JSON(http.StatusOK, WellnessChatResponse{Reply: reply})
}

func (h *handler) insight(c echo.Context) error {
	session, ok := auth.SessionFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var req InsightRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Topic == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Topic is required",
		})
	}

	insight, err := h.deps.Insights.Generate(c.Request().Context(), req.Topic, resolveLocale(req.Locale, session))
	if err != nil {
		h.deps.Logger.Error("Insight generation failed",
			zap.String("topic", req.Topic),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "generation_failed",
			Message: "Could not generate an insight",
		})
	}

	return c.JSON(http.StatusOK, InsightResponse{HTML: insight})
}

func (h *handler) deepDive(c echo.Context) error {
	var req DeepDiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Project == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Project is required",
		})
	}

	html, err := h.deps.DeepDives.Generate(c.Request().Context(), req.Project)
	if err != nil {
		if errors.Is(err, usecase.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "project_not_found",
				Message: "No portfolio project matches " + req.Project,
			})
		}
		h.deps.Logger.Error("Deep dive generation failed",
			zap.String("project", req.Project),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "generation_failed",
			Message: "Could not generate the deep dive",
		})
	}

	return c.JSON(http.StatusOK, DeepDiveResponse{Project: req.Project, HTML: html})
}

func (h *handler) listInteractions(c echo.Context) error {
	session, ok := auth.SessionFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	disposition := entities.Disposition(c.QueryParam("disposition"))
	if disposition != "" && !entities.ValidDisposition(disposition) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_disposition",
			Message: "Unknown disposition " + string(disposition),
		})
	}

	interactions, err := h.deps.History.List(c.Request().Context(), session.UserID, disposition)
	if err != nil {
		h.deps.Logger.Error("Failed to list interactions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "listing_failed",
			Message: "Could not load interactions",
		})
	}

	views := make([]InteractionView, 0, len(interactions))
	for _, interaction := range interactions {
		views = append(views, InteractionView{
			ID:          interaction.ID,
			Content:     interaction.Content,
			Disposition: string(interaction.Disposition),
			CreatedAt:   interaction.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, views)
}

func (h *handler) toggleInteraction(c echo.Context) error {
	session, ok := auth.SessionFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var req ToggleInteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Content == "" || req.Disposition == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Content and disposition are required",
		})
	}
	disposition := entities.Disposition(req.Disposition)
	if !entities.ValidDisposition(disposition) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_disposition",
			Message: "Unknown disposition " + req.Disposition,
		})
	}

	active, err := h.deps.History.Toggle(c.Request().Context(), session.UserID, req.Content, disposition)
	if err != nil {
		h.deps.Logger.Error("Failed to toggle interaction", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "toggle_failed",
			Message: "Could not update the interaction",
		})
	}

	return c.JSON(http.StatusOK, ToggleInteractionResponse{Active: active})
}

// resolveLocale prefers a per-request locale over the session's.
func resolveLocale(requested string, session *auth.Session) string {
	if requested != "" {
		return requested
	}
	return session.Locale
}
