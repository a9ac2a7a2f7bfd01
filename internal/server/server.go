package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/config"
	"github.com/mikey/llm-scam-detector/internal/core"
	"github.com/mikey/llm-scam-detector/internal/factory"
	"github.com/mikey/llm-scam-detector/internal/utils"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Server exposes the detection engine and pattern catalog over HTTP.
type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	detector   *core.ScamDetector
	store      core.PatternStore
	textProc   *utils.TextProcessor
	llmFactory *factory.LLMFactory
	httpServer *http.Server
}

// NewServer creates the HTTP server around an initialized detector.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	detector *core.ScamDetector,
	store core.PatternStore,
	textProc *utils.TextProcessor,
	llmFactory *factory.LLMFactory,
) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		detector:   detector,
		store:      store,
		textProc:   textProc,
		llmFactory: llmFactory,
	}
}

// Routes builds the chi router with all endpoints and middleware.
func (s *Server) Routes() http.Handler {
	requestTimeout, err := s.cfg.GetDuration("server.request_timeout")
	if err != nil {
		requestTimeout = 3 * time.Minute
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.GetStringSlice("server.cors_allowed_origins"),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.handleHealth)

		api.Get("/config", s.handleGetConfig)
		api.Put("/config", s.handleUpdateConfig)

		api.Post("/analyze", s.handleAnalyze)
		api.Post("/analyze/batch", s.handleAnalyzeBatch)

		api.Route("/patterns", func(p chi.Router) {
			p.Get("/", s.handleListPatterns)
			p.Post("/", s.handleCreatePattern)
			p.Get("/export", s.handleExportPatterns)
			p.Post("/import", s.handleImportPatterns)
			p.Post("/reset", s.handleResetPatterns)
			p.Get("/{name}", s.handleGetPattern)
			p.Put("/{name}", s.handleUpdatePattern)
			p.Delete("/{name}", s.handleDeletePattern)
		})
	})

	return r
}

// Start begins serving in a background goroutine.
func (s *Server) Start() error {
	addr := s.cfg.GetString("server.listen_address")
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}

	go func() {
		s.logger.Info("HTTP server listening", zap.String("address", addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server failed", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
