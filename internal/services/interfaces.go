package services

import (
	"context"
	"time"

	"task-board/internal/domain"
)

// Board is the current placement of every task, one entry per board column
// in display order.
type Board struct {
	Columns []domain.BoardColumn `json:"columns"`
}

// Column returns the tasks currently in c.
func (b Board) Column(c domain.Column) []domain.BoardTask {
	for _, col := range b.Columns {
		if col.Column == c {
			return col.Tasks
		}
	}
	return nil
}

// LogReader is the read side of the event log that reports are derived from.
type LogReader interface {
	ReadAll(ctx context.Context) ([]domain.MovementEvent, error)
}

// ReportingService derives read-only views from the event log. Every call
// reads the full log; nothing is cached between calls.
type ReportingService interface {
	// Current state
	CurrentBoard(ctx context.Context) (Board, error)
	TaskStates(ctx context.Context) (map[string]domain.MovementEvent, error)
	TaskState(ctx context.Context, id string) (domain.MovementEvent, error)

	// Reports
	TimeTracking(ctx context.Context) ([]domain.DurationRecord, error)
	DailyDigest(ctx context.Context, ref time.Time) ([]domain.DigestGroup, error)
	DailyReport(ctx context.Context, ref time.Time) (string, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	ReportingService ReportingService
}

// NewServiceContainer wires the services over log.
func NewServiceContainer(log LogReader) *ServiceContainer {
	return &ServiceContainer{
		ReportingService: NewReportingService(log),
	}
}
