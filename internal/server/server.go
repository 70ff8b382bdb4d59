// Package server exposes the BL parser and checker over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	ginlogrus "github.com/toorop/gin-logrus"

	"github.com/you-not-fish/bl/internal/config"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const shutdownTimeout = 5 * time.Second

// Server is the HTTP parse service.
type Server struct {
	conf   *config.Config
	log    *logrus.Logger
	cache  *resultCache
	router *gin.Engine
}

// New builds a server from conf. log receives request and lifecycle logs.
func New(conf *config.Config, log *logrus.Logger) (*Server, error) {
	cache, err := newResultCache(conf.Server.CacheSize)
	if err != nil {
		return nil, err
	}

	s := &Server{
		conf:   conf,
		log:    log,
		cache:  cache,
		router: gin.New(),
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, RequestIDHeader)
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	if len(conf.Server.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = conf.Server.AllowedOrigins
	}

	s.router.Use(s.requestID(), ginlogrus.Logger(log), cors.New(corsConfig), gin.Recovery())

	s.router.GET("/healthz", s.healthz)
	v1 := s.router.Group("/v1")
	v1.POST("/parse", s.parse)
	v1.POST("/check", s.check)

	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.conf.Server.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves requests on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.conf.Server.ReadTimeout.Duration,
		WriteTimeout: s.conf.Server.WriteTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("serving BL parser")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestID tags each request with an ID, taken from the request header
// when the client supplies one.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// logger returns a request-scoped log entry.
func (s *Server) logger(c *gin.Context) *logrus.Entry {
	return s.log.WithField("request_id", c.GetString("request_id"))
}
