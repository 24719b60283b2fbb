package cli

import (
	"context"

	"github.com/gin-gonic/gin"

	"task-board/internal/web"
)

// ServeCommand runs the HTTP API
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Server builds the web server from the application configuration
func (c *ServeCommand) Server() *web.Server {
	cfg := c.app.config
	gin.SetMode(cfg.Server.Mode)

	return web.NewServer(c.app.api, web.Options{
		HistoryExportFile: cfg.Reports.HistoryExportFile,
		TimeTrackingFile:  cfg.Reports.TimeTrackingFile,
		DailyReportFile:   cfg.Reports.DailyReportFile,
		MaxImportBytes:    cfg.Server.MaxImportBytes,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		Now:               c.app.now,
	})
}

// Execute serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context) error {
	addr := c.app.config.Server.Addr
	c.app.printf("Serving board on http://%s\n", addr)
	return c.Server().Run(ctx, addr)
}
