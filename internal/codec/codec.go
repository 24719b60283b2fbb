// Package codec encodes the movement log to semicolon-delimited text and
// decodes exported files back into a log and a problem registry.
package codec

import (
	"task-board/internal/domain"
	"task-board/internal/logging"
	"task-board/internal/registry"
)

// HistoryHeader is the header row of the full history export.
var HistoryHeader = []string{"ID", "Problem", "Task", "Result", "Timestamp", "Column"}

// TimeTrackingHeader is the header row of the time-tracking export.
var TimeTrackingHeader = []string{"idtask", "task", "situacaoproblema", "resultado", "tempogasto"}

// EncodeHistory renders the log as delimited text, one record per event in
// log order, fields ordered id, problem, task, result, timestamp, column.
func EncodeHistory(events []domain.MovementEvent) string {
	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = []string{e.ID, e.Problem, e.Content, e.Result, e.Timestamp, e.Column}
	}
	return joinRecords(HistoryHeader, rows)
}

// DecodeHistory parses a history export. The first record is the header and
// is skipped. Rows without an id, task or column are dropped. The returned
// registry is rebuilt from the accepted rows: the first row naming a problem
// sets its expected result.
func DecodeHistory(text string) ([]domain.MovementEvent, *registry.Registry) {
	records := scanRecords(text)
	events := make([]domain.MovementEvent, 0, len(records))
	if len(records) == 0 {
		return events, registry.New()
	}

	dropped := 0
	for _, fields := range records[1:] {
		e := domain.MovementEvent{
			ID:        field(fields, 0),
			Problem:   field(fields, 1),
			Content:   field(fields, 2),
			Result:    field(fields, 3),
			Timestamp: field(fields, 4),
			Column:    field(fields, 5),
		}
		if !e.IsComplete() {
			dropped++
			continue
		}
		events = append(events, e)
	}

	if dropped > 0 {
		logging.Debugf("import dropped %d incomplete rows of %d", dropped, len(records)-1)
	}
	return events, registry.FromEvents(events)
}

// EncodeTimeTracking renders duration records as the time-tracking export.
func EncodeTimeTracking(records []domain.DurationRecord) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.ID, r.Task, r.Problem, r.Result, r.Formatted()}
	}
	return joinRecords(TimeTrackingHeader, rows)
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
