package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/belaycheck/internal/domain/session"
	"github.com/yanqian/belaycheck/internal/infra/config"
	"github.com/yanqian/belaycheck/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, sessions session.Service, recorder *metrics.Recorder) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger, recorder),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)
	if cfg.HTTP.MetricsPath != "" && recorder != nil {
		router.GET(cfg.HTTP.MetricsPath, gin.WrapH(recorder.Handler()))
	}

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.POST("/assessments", handler.Assess)
		api.POST("/assessments/localize", handler.Localize)
		api.GET("/devices", handler.Devices)
		api.GET("/translations", handler.Translations)
		api.GET("/updates", handler.Updates)
		api.POST("/sessions", handler.OpenSession)
	}

	client := api.Group("")
	client.Use(sessionMiddleware(sessions))
	{
		client.GET("/pairs", handler.ListPairs)
		client.POST("/pairs", handler.SavePair)
		client.DELETE("/pairs", handler.ClearPairs)
		client.GET("/notices", handler.Notices)
		client.POST("/notices/update/ack", handler.AcknowledgeUpdate)
		client.POST("/notices/install/dismiss", handler.DismissInstallPrompt)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger, recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		recorder.ObserveRequest(c.FullPath(), c.Request.Method, c.Writer.Status(), latency)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
