package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/hanifwidyanto/kirana/adapters/llm"
	"github.com/hanifwidyanto/kirana/adapters/mongo"
	"github.com/hanifwidyanto/kirana/adapters/stt"
	"github.com/hanifwidyanto/kirana/adapters/vector"
	"github.com/hanifwidyanto/kirana/domain/repositories"
	"github.com/hanifwidyanto/kirana/internal/api"
	"github.com/hanifwidyanto/kirana/internal/auth"
	"github.com/hanifwidyanto/kirana/internal/catalog"
	"github.com/hanifwidyanto/kirana/internal/config"
	"github.com/hanifwidyanto/kirana/internal/history"
	"github.com/hanifwidyanto/kirana/internal/retrieval"
	"github.com/hanifwidyanto/kirana/internal/websocket"
	"github.com/hanifwidyanto/kirana/usecase"
)

func main() {
	ingest := flag.Bool("ingest", false, "index the portfolio catalog into the vector store and exit")
	flag.Parse()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize adapters
	gateway, err := llm.NewGateway(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize completion gateway", zap.Error(err))
	}

	var store repositories.VectorStore = vector.DisabledStore{}
	if cfg.VectorIndexURL != "" {
		pinecone, err := vector.NewPineconeStore(vector.PineconeConfig{
			IndexURL: cfg.VectorIndexURL,
			APIKey:   cfg.VectorAPIKey,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize vector store", zap.Error(err))
		}
		store = pinecone
	} else {
		logger.Warn("No vector index configured, search will use the substring fallback")
	}

	corpus := catalog.Default()

	if *ingest {
		indexer := retrieval.NewIndexer(gateway, store, logger)
		count, err := indexer.Ingest(context.Background(), corpus)
		if err != nil {
			logger.Fatal("Catalog ingestion failed", zap.Error(err))
		}
		logger.Info("Catalog ingested", zap.Int("records", count))
		return
	}

	mongoClient, err := mongo.NewClient(cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Close(ctx); err != nil {
			logger.Error("Failed to close MongoDB connection", zap.Error(err))
		}
	}()

	// Initialize usecase services
	historySvc := history.NewService(mongo.NewInteractionRepository(mongoClient.Database), logger)
	pipeline := retrieval.NewPipeline(gateway, store, logger)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize API routes
	api.InitRoutes(e, api.Dependencies{
		Auth:         auth.NewManager(cfg.JWTSecret),
		Affirmations: usecase.NewAffirmationService(gateway, historySvc, logger),
		Wellness:     usecase.NewWellnessService(gateway, logger),
		Insights:     usecase.NewInsightService(gateway, logger),
		DeepDives:    usecase.NewDeepDiveService(gateway, corpus, logger),
		Search:       usecase.NewSearchService(gateway, pipeline, corpus, logger),
		History:      historySvc,
		Transcriber:  stt.NewGoogleSpeechToText(logger),
		Playback:     websocket.NewPlaybackHandler(gateway, cfg.ChunkMaxChars, logger),
		Logger:       logger,
	})

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
