// Package server exposes the catalog, recommendation and ledger operations
// over HTTP with gin.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hungrypeople/feast/internal/config"
	"github.com/hungrypeople/feast/internal/ledger"
	"github.com/hungrypeople/feast/internal/recommend"
	"github.com/hungrypeople/feast/internal/service"
)

// Server wires the HTTP routes to the application services.
type Server struct {
	store  service.Storage
	ledger *ledger.Service
	engine *recommend.Engine
	cfg    config.Config
}

// New creates a server over the given storage and configuration.
func New(store service.Storage, cfg config.Config) *Server {
	return &Server{
		store:  store,
		ledger: ledger.New(store),
		engine: recommend.NewEngine(store),
		cfg:    cfg,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/stats", s.handleStats)
		api.GET("/regions", s.handleRegions)

		api.GET("/venues", s.handleVenues)
		api.GET("/venues/search", s.handleVenueSearch)

		api.GET("/events", s.handleEvents)
		api.GET("/events/:id", s.handleEvent)
		api.GET("/events/search", s.handleEventSearch)

		api.GET("/recommendations", s.handleRecommendations)
		api.GET("/smart-recommendations", s.handleSmartRecommendations)
		api.GET("/policy-recommendations", s.handlePolicyRecommendations)
		api.GET("/event-recommendations/:id", s.handleEventRecommendations)

		api.GET("/features/budget-ledger", s.handleFeatureStatus)

		budget := api.Group("/budgets", s.requireLedger())
		{
			budget.POST("", s.handleCreateBudget)
			budget.GET("", s.handleListBudgets)
			budget.GET("/:id", s.handleGetBudget)
			budget.POST("/:id/lines", s.handleCreateBudgetLine)
		}

		lines := api.Group("/budget-lines", s.requireLedger())
		{
			lines.POST("/:id/transactions", s.handleRecordTransaction)
			lines.GET("/:id/summary", s.handleLineSummary)
			lines.GET("/:id/recommendations", s.handleLineRecommendations)
		}

		api.DELETE("/transactions/:id", s.requireLedger(), s.handleInvalidateTransaction)
	}

	return router
}

// Run starts the HTTP server and shuts it down when the context is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.cfg.Listen, "ledger_enabled", s.cfg.LedgerEnabled)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "feast",
	})
}

// requestLogger logs each request with slog at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
