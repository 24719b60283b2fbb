package services

import (
	"context"
	"time"

	"task-board/internal/domain"
	"task-board/internal/errors"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	log LogReader
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(log LogReader) ReportingService {
	return &reportingServiceImpl{log: log}
}

// CurrentBoard returns every task placed in its current column
func (r *reportingServiceImpl) CurrentBoard(ctx context.Context) (Board, error) {
	log, err := r.log.ReadAll(ctx)
	if err != nil {
		return Board{}, err
	}
	return BuildBoard(log), nil
}

// TaskStates returns the latest event of every task
func (r *reportingServiceImpl) TaskStates(ctx context.Context) (map[string]domain.MovementEvent, error) {
	log, err := r.log.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return LatestByTask(log), nil
}

// TaskState returns the latest event of a single task
func (r *reportingServiceImpl) TaskState(ctx context.Context, id string) (domain.MovementEvent, error) {
	states, err := r.TaskStates(ctx)
	if err != nil {
		return domain.MovementEvent{}, err
	}
	state, ok := states[id]
	if !ok {
		return domain.MovementEvent{}, errors.NewNotFoundError("task", id)
	}
	return state, nil
}

// TimeTracking returns the in-progress time of every task
func (r *reportingServiceImpl) TimeTracking(ctx context.Context) ([]domain.DurationRecord, error) {
	log, err := r.log.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateDurations(log), nil
}

// DailyDigest returns yesterday's activity relative to ref, grouped by problem
func (r *reportingServiceImpl) DailyDigest(ctx context.Context, ref time.Time) ([]domain.DigestGroup, error) {
	log, err := r.log.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return GroupDigest(log, ref), nil
}

// DailyReport returns the rendered daily report text
func (r *reportingServiceImpl) DailyReport(ctx context.Context, ref time.Time) (string, error) {
	groups, err := r.DailyDigest(ctx, ref)
	if err != nil {
		return "", err
	}
	return RenderDigest(groups), nil
}
