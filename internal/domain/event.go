package domain

import "time"

// MovementEvent records a task being placed in a column at a point in time.
// Events are immutable once appended; a task moves by appending a new event
// with the same ID. Column stays raw text so imported rows with an unknown
// column are kept verbatim.
type MovementEvent struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Column    string `json:"column"`
	Problem   string `json:"problem"`
	Result    string `json:"result"`
	Timestamp string `json:"timestamp"`
}

// NewMovementEvent creates an event stamped with the given instant.
func NewMovementEvent(id, content string, column Column, problem, result string, at time.Time) MovementEvent {
	return MovementEvent{
		ID:        id,
		Content:   content,
		Column:    string(column),
		Problem:   problem,
		Result:    result,
		Timestamp: FormatTimestamp(at),
	}
}

// ColumnValue returns the event's column as a Column.
func (e MovementEvent) ColumnValue() Column {
	return Column(e.Column)
}

// IsComplete reports whether the event carries the fields an imported row
// must have to be accepted into the log.
func (e MovementEvent) IsComplete() bool {
	return e.ID != "" && e.Content != "" && e.Column != ""
}

// Time parses the event timestamp in loc.
func (e MovementEvent) Time(loc *time.Location) (time.Time, error) {
	return ParseTimestamp(e.Timestamp, loc)
}
