package services

import (
	"time"

	"task-board/internal/domain"
	"task-board/internal/logging"
)

// tracker is the per-task state of the duration walk. A nil start means the
// task is idle.
type tracker struct {
	record domain.DurationRecord
	start  *time.Time
}

// AggregateDurations sums, per task, the time between each entry into
// "In Progress" and the next "Done" or "To Do" event for the same id.
//
// The first entry into "In Progress" anchors an interval; repeated entries
// before a close are ignored. An interval still open at the end of the log
// is not counted. A close earlier than its anchor adds a negative delta,
// which is kept and reported as a warning. Events whose timestamp cannot be
// parsed leave the task's state unchanged.
//
// Records are returned in the order each id first appears in the log, with
// the task, problem and result of the last event seen for the id.
func AggregateDurations(log []domain.MovementEvent) []domain.DurationRecord {
	trackers := make(map[string]*tracker)
	var order []string

	for _, e := range log {
		tr, ok := trackers[e.ID]
		if !ok {
			tr = &tracker{record: domain.DurationRecord{ID: e.ID}}
			trackers[e.ID] = tr
			order = append(order, e.ID)
		}
		tr.record.Task = e.Content
		tr.record.Problem = e.Problem
		tr.record.Result = e.Result

		col := e.ColumnValue()
		if col != domain.ColumnInProgress && col != domain.ColumnDone && col != domain.ColumnToDo {
			continue
		}

		at, err := e.Time(time.UTC)
		if err != nil {
			logging.Debugf("task %s: ignoring event with unparseable timestamp %q", e.ID, e.Timestamp)
			continue
		}

		switch col {
		case domain.ColumnInProgress:
			if tr.start == nil {
				tr.start = &at
			}
		case domain.ColumnDone, domain.ColumnToDo:
			if tr.start == nil {
				continue
			}
			elapsed := at.Sub(*tr.start).Milliseconds()
			if elapsed < 0 {
				logging.Warnf("task %s: %q at %s precedes its In Progress entry at %s; adding %s",
					e.ID, e.Column, e.Timestamp, domain.FormatTimestamp(*tr.start), domain.FormatDuration(elapsed))
			}
			tr.record.TotalDuration += elapsed
			tr.start = nil
		}
	}

	records := make([]domain.DurationRecord, 0, len(order))
	for _, id := range order {
		records = append(records, trackers[id].record)
	}
	return records
}
