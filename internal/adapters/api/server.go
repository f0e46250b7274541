// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cityweather.app/internal/adapters/api/views"
	"cityweather.app/internal/core/weather"
	"cityweather.app/internal/ports"
	"cityweather.app/pkg/errors"
)

const renderFailureMessage = "internal server error: the page could not be rendered"

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router         *gin.Engine
	templates      *template.Template
	config         ServerConfig
	weatherUseCase WeatherUseCase
	healthChecker  ports.SystemHealthChecker
	requestMetrics RequestMetrics
	gatherer       prometheus.Gatherer
	logger         ports.Logger
}

// WeatherUseCase is the use case the HTTP adapter depends on
type WeatherUseCase interface {
	Home(ctx context.Context) weather.HomeView
	GetReport(ctx context.Context, query weather.WeatherQuery) (*weather.ReportView, error)
	Compare(ctx context.Context, query weather.ComparisonQuery) (*weather.ComparisonView, error)
}

// RequestMetrics records served requests
type RequestMetrics interface {
	ObserveRequest(route string, status int, duration time.Duration)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	WeatherUseCase      WeatherUseCase
	SystemHealthChecker ports.SystemHealthChecker
	RequestMetrics      RequestMetrics
	Gatherer            prometheus.Gatherer
	Logger              ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	tmpl, err := views.LoadTemplates()
	if err != nil {
		return nil, errors.NewRenderingError("failed to load page templates", err)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerValidators(v, opts.Logger)
	}

	server := &HTTPServerAdapter{
		router:         gin.New(),
		templates:      tmpl,
		config:         opts.Config,
		weatherUseCase: opts.WeatherUseCase,
		healthChecker:  opts.SystemHealthChecker,
		requestMetrics: opts.RequestMetrics,
		gatherer:       opts.Gatherer,
		logger:         opts.Logger,
	}

	server.setupMiddleware()
	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.SystemHealthChecker == nil {
		return errors.NewValidationError("system health checker is required")
	}
	if opts.RequestMetrics == nil {
		return errors.NewValidationError("request metrics are required")
	}
	if opts.Gatherer == nil {
		return errors.NewValidationError("metrics gatherer is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

func (s *HTTPServerAdapter) setupMiddleware() {
	s.router.Use(
		requestIDMiddleware(),
		accessLogMiddleware(s.logger),
		metricsMiddleware(s.requestMetrics),
		recoveryMiddleware(s),
	)
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	s.router.GET("/", s.home)
	s.router.GET("/results", s.results)
	s.router.GET("/comparison_results", s.comparisonResults)

	s.router.GET("/healthz", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	s.router.NoRoute(func(c *gin.Context) {
		s.renderError(c, http.StatusNotFound, "Page not found", []string{"page not found"})
	})
}

// render executes page into a buffer before writing it. If execution fails
// the visitor gets a plain-text 500 instead of a partial page.
func (s *HTTPServerAdapter) render(c *gin.Context, status int, page string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, page, data); err != nil {
		s.logger.Error("Failed to render page",
			ports.F("request_id", c.GetString(requestIDKey)),
			ports.F("page", page),
			ports.F("error", errors.NewRenderingError("template execution failed", err).Error()))
		c.String(http.StatusInternalServerError, renderFailureMessage)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// health handles GET /healthz requests
func (s *HTTPServerAdapter) health(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())

	status := http.StatusOK
	if !ports.AllHealthy(results) {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"components": results})
}
