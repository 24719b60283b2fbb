// Package web serves the board over HTTP.
package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task-board/internal/api"
	"task-board/internal/logging"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// Options configures the server.
type Options struct {
	HistoryExportFile string
	TimeTrackingFile  string
	DailyReportFile   string
	MaxImportBytes    int64
	ShutdownTimeout   time.Duration
	Now               func() time.Time
}

// Server is the board web server
type Server struct {
	board  api.BoardAPI
	router *gin.Engine
	opts   Options

	// mu serialises requests that append to or replace the log.
	mu sync.Mutex
}

// NewServer creates a new web server. The gin mode must be set by the
// caller before the server is created.
func NewServer(board api.BoardAPI, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxImportBytes <= 0 {
		opts.MaxImportBytes = 10 << 20
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID())
	if logging.DebugEnabled() {
		router.Use(gin.Logger())
	}

	s := &Server{
		board:  board,
		router: router,
		opts:   opts,
	}

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/problems", s.handleListProblems)
		apiGroup.POST("/problems", s.handleRegisterProblem)
		apiGroup.POST("/tasks", s.handleCreateTask)
		apiGroup.POST("/tasks/:id/move", s.handleMoveTask)
		apiGroup.GET("/board", s.handleBoard)
		apiGroup.GET("/history", s.handleHistory)
		apiGroup.GET("/export", s.handleExport)
		apiGroup.POST("/import", s.handleImport)
		apiGroup.GET("/reports/time", s.handleTimeReport)
		apiGroup.GET("/reports/daily", s.handleDailyReport)
	}

	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.Debugf("shutting down web server on %s", addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
