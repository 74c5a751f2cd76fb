// Package server exposes the decay model over HTTP. Each request performs
// one independent computation; the catalog is read-only and computed curves
// are memoised in a TTL cache.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/decaysim/internal/config"
	"github.com/san-kum/decaysim/internal/metrics"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Echo     *echo.Echo
	cfg      *config.Config
	log      *zap.Logger
	metrics  *metrics.DecayMetrics
	registry *prometheus.Registry
	curves   *cache.Cache
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	m, err := metrics.NewDecayMetrics(registry)
	if err != nil {
		return nil, err
	}

	ttl := cfg.Server.CacheTTL
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}

	s := &Server{
		Echo:     echo.New(),
		cfg:      cfg,
		log:      log,
		metrics:  m,
		registry: registry,
		curves:   cache.New(ttl, 2*ttl),
	}
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(s.requestLogger())
	s.initRoutes()
	return s, nil
}

func (s *Server) initRoutes() {
	api := s.Echo.Group("/api/v1")

	api.GET("/health", s.Health)
	api.GET("/isotopes", s.ListIsotopes)
	api.GET("/isotopes/:key", s.GetIsotope)
	api.GET("/units", s.ListUnits)
	api.GET("/decay", s.GetDecay)
	api.GET("/decay/csv", s.GetDecayCSV)
	api.GET("/decay/svg", s.GetDecaySVG)

	s.Echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				s.log.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			s.log.Debug("request", fields...)
			return nil
		},
	})
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.cfg.Server.Addr))
		errCh <- s.Echo.Start(s.cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down http server")
	return s.Echo.Shutdown(shutdownCtx)
}
