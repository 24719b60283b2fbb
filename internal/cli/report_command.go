package cli

import (
	"context"
	"strings"
	"time"

	"task-board/internal/api"
	"task-board/internal/errors"
)

// ReportCommand handles the time-tracking and daily reports
type ReportCommand struct {
	app *App
	api api.BoardAPI
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app, api: app.api}
}

// TimeReport prints the time each task spent in progress and writes the
// time-tracking export. With toStdout the export is printed instead.
func (c *ReportCommand) TimeReport(ctx context.Context, toStdout bool) error {
	if toStdout {
		text, err := c.api.ExportTimeTracking(ctx)
		if err != nil {
			return err
		}
		c.app.printf("%s", text)
		return nil
	}

	records, err := c.api.TimeTracking(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		c.app.printf("No tasks found\n")
	}
	for _, r := range records {
		c.app.printf("%s  %s  %s [%s]\n", r.Formatted(), r.ID, r.Task, r.Problem)
	}

	text, err := c.api.ExportTimeTracking(ctx)
	if err != nil {
		return err
	}
	path, err := c.app.writeReport(c.app.config.Reports.TimeTrackingFile, text)
	if err != nil {
		return err
	}
	c.app.printf("Time tracking exported to %s\n", path)
	return nil
}

// DailyReport prints the activity of the day before date (YYYY-MM-DD, or
// today when empty) and writes it to the daily report file unless toStdout
// is set.
func (c *ReportCommand) DailyReport(ctx context.Context, date string, toStdout bool) error {
	ref := c.app.now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, ref.Location())
		if err != nil {
			return errors.NewInvalidInputError("date", date, "use YYYY-MM-DD")
		}
		ref = parsed
	}

	text, err := c.api.DailyReport(ctx, ref)
	if err != nil {
		return err
	}

	c.app.printf("%s", text)
	if !strings.HasSuffix(text, "\n") {
		c.app.printf("\n")
	}
	if toStdout {
		return nil
	}

	path, err := c.app.writeReport(c.app.config.Reports.DailyReportFile, text)
	if err != nil {
		return err
	}
	c.app.printf("Daily report written to %s\n", path)
	return nil
}
