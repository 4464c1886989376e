// Package server is an in-memory development backend implementing the same
// REST contract the StudyPilot client speaks. It issues real JWTs and keeps
// per-user state, so the client can be exercised end to end without the
// production backend. Not for deployment: all state is lost on restart.
package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"studypilot/internal/logging"
)

const tokenValidity = 24 * time.Hour

type Options struct {
	// Address to listen on, e.g. ":8000".
	Address string
	// Secret signs the issued JWTs. Required.
	Secret []byte
	// Logger is used for structured logging.
	Logger logging.Logger
	// DisableRequestLogs silences per-request logging, used in tests.
	DisableRequestLogs bool
}

type Server struct {
	opts  Options
	app   *echo.Echo
	store *memStore
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.NewTextLogger(io.Discard, slog.LevelError)
	}
	s := &Server{
		opts:  opts,
		app:   echo.New(),
		store: newMemStore(),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableRequestLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(middleware.Recover())

	s.app.POST("/auth/signup", s.signup)
	s.app.POST("/auth/login", s.login)

	authed := s.app.Group("", s.requireBearer)
	authed.GET("/dashboard", s.dashboard)
	authed.GET("/status", s.status)
	authed.POST("/upload_files", s.uploadFiles)
	authed.POST("/ask", s.ask)
	authed.POST("/summarize", s.summarize)
	authed.POST("/quiz", s.quiz)
	authed.POST("/quiz/submit", s.submitQuiz)
	authed.GET("/history", s.history)
}

func (s *Server) Start() error {
	s.opts.Logger.Info(context.Background(), "development backend listening", "address", s.opts.Address)
	return s.app.Start(s.opts.Address)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// ServeHTTP makes the server usable with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}
