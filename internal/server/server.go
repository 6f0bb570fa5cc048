package server

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/freegames-hub/freegames/pkg/aggregate"
	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/platforms"
)

// Aggregator is the part of *aggregate.Aggregator the API needs.
type Aggregator interface {
	Aggregate(ctx context.Context, sources []offers.Source, opts aggregate.Options) (*aggregate.Batch, error)
	Sources() []aggregate.SourceReport
}

type Server struct {
	Agg      Aggregator
	Echo     *echo.Echo
	Username string
	Password string
	log      platforms.Logger
}

// New wires the routes. metrics may be nil, in which case /metrics is not
// served. Basic auth guards /api when both user and pass are set.
func New(agg Aggregator, metrics http.Handler, user, pass string, log platforms.Logger) *Server {
	if log == nil {
		log = platforms.NopLogger{}
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debugf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	s := &Server{
		Agg:      agg,
		Echo:     e,
		Username: user,
		Password: pass,
		log:      log,
	}
	s.routes(metrics)
	return s
}

func (s *Server) routes(metrics http.Handler) {
	s.Echo.GET("/health", s.handleHealth)
	if metrics != nil {
		s.Echo.GET("/metrics", echo.WrapHandler(metrics))
	}

	api := s.Echo.Group("/api")
	if s.Username != "" && s.Password != "" {
		api.Use(middleware.BasicAuth(s.checkCredentials))
	}
	api.GET("/offers", s.handleOffers)
	api.GET("/sources", s.handleSources)
}

func (s *Server) checkCredentials(user, pass string, _ echo.Context) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.Password)) == 1
	return userOK && passOK, nil
}

func (s *Server) Start(addr string) error {
	s.log.Infof("Starting server on %s", addr)
	err := s.Echo.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
