package services

import (
	"task-board/internal/domain"
)

// LatestByTask returns the current state of every task: for each id, the
// event with the greatest position in the log. Recency is decided by append
// order alone; timestamp values are never compared.
func LatestByTask(log []domain.MovementEvent) map[string]domain.MovementEvent {
	latest := make(map[string]domain.MovementEvent)
	for _, e := range log {
		latest[e.ID] = e
	}
	return latest
}

// taskOrder returns the distinct ids of log in first-appearance order.
func taskOrder(log []domain.MovementEvent) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, e := range log {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		ids = append(ids, e.ID)
	}
	return ids
}

// BuildBoard places each task in the column of its latest event. Within a
// column tasks keep the order in which their id first appeared in the log.
// A task whose latest column is not a board column is left off the board.
func BuildBoard(log []domain.MovementEvent) Board {
	latest := LatestByTask(log)

	byColumn := make(map[domain.Column][]domain.BoardTask)
	for _, id := range taskOrder(log) {
		e := latest[id]
		col, ok := domain.ParseColumn(e.Column)
		if !ok {
			continue
		}
		byColumn[col] = append(byColumn[col], domain.BoardTask{
			ID:      e.ID,
			Content: e.Content,
			Problem: e.Problem,
			Result:  e.Result,
			Since:   e.Timestamp,
		})
	}

	board := Board{}
	for _, col := range domain.Columns() {
		tasks := byColumn[col]
		if tasks == nil {
			tasks = []domain.BoardTask{}
		}
		board.Columns = append(board.Columns, domain.BoardColumn{Column: col, Tasks: tasks})
	}
	return board
}
