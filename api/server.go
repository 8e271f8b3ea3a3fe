package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"paperscrape/crawler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server represents the API server
type Server struct {
	handler        *Handler
	logger         *zap.Logger
	port           int
	trustedProxies []string
}

// NewServer creates a new API server
func NewServer(handler *Handler, logger *zap.Logger, port int) *Server {
	return &Server{
		handler:        handler,
		logger:         logger,
		port:           port,
		trustedProxies: []string{"127.0.0.1"},
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	if err := router.SetTrustedProxies(s.trustedProxies); err != nil {
		s.logger.Warn("Failed to set trusted proxies",
			zap.Strings("proxies", s.trustedProxies),
			zap.Error(err))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	s.handler.RegisterRoutes(router.Group("/api"))
	return router
}

// requestLogger tags each request with an ID and logs its outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = crawler.NewRequestID()
		}
		ctx := crawler.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		crawler.ContextLogger(ctx, s.logger).Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting API server", zap.Int("port", s.port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down API server")
		return srv.Shutdown(shutdownCtx)
	}
}
