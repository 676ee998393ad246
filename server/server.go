package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/oauth-redirect-relay/analytics"
	"github.com/jrsteele09/oauth-redirect-relay/exchange"
	"github.com/jrsteele09/oauth-redirect-relay/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	handler   http.Handler
	exchanger exchange.Exchanger
	reporter  analytics.Reporter
	favicon   []byte // read once at startup, shared read-only
	logger    zerolog.Logger
}

type Option func(*Server)

func WithExchanger(e exchange.Exchanger) Option {
	return func(s *Server) {
		s.exchanger = e
	}
}

func WithReporter(r analytics.Reporter) Option {
	return func(s *Server) {
		s.reporter = r
	}
}

// WithFavicon overrides the icon read from the configured path. nil means no icon.
func WithFavicon(icon []byte) Option {
	return func(s *Server) {
		s.favicon = icon
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

func New(config config.Config, opts ...Option) (*Server, error) {
	icon, err := LoadFavicon(config.GetFaviconPath())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to load favicon: %w", err)
	}

	s := &Server{
		env:     config.GetEnv(),
		favicon: icon,
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.exchanger == nil {
		s.exchanger = exchange.New(
			config.GetTokenEndpoint(),
			config.GetClientID(),
			config.GetClientSecret(),
			config.GetExchangeTimeout(),
		)
	}
	if s.reporter == nil {
		s.reporter = newReporter(config, s.logger)
	}

	s.handler = ChainMiddleware(s.router(), s.StdMiddleware()...)
	s.logRoutes()

	return s, nil
}

// Reporter exposes the analytics reporter so shutdown can wait for in-flight events.
func (s *Server) Reporter() analytics.Reporter {
	return s.reporter
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func newReporter(c config.AnalyticsConfig, logger zerolog.Logger) analytics.Reporter {
	if !c.GetAnalyticsEnabled() {
		return analytics.Disabled{}
	}
	return analytics.NewCollector(
		c.GetAnalyticsURL(),
		c.GetThisDomain(),
		c.GetAnalyticsAPIKey(),
		c.GetAnalyticsTimeout(),
		logger,
	)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range routeTable {
		s.logRoute(route.method, route.pattern)
	}
}

func (s *Server) logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	s.logger.Info().Msgf("[%-19s] %s", displayMethod, path)
}
