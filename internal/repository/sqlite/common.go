package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"task-board/internal/errors"
)

// HandlePersistenceError converts database errors to structured app errors
func HandlePersistenceError(operation string, err error) error {
	return errors.NewPersistenceError(operation, err)
}

// HandleTimeoutError reports err as a timeout when the statement ran past its
// deadline and returns it unchanged otherwise.
func HandleTimeoutError(ctx context.Context, operation string, timeout time.Duration, err error) error {
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, context.DeadlineExceeded) && !stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return err
	}
	timeoutErr := errors.NewTimeoutError(operation, timeout)
	timeoutErr.Cause = err
	return timeoutErr
}

// ExecuteWithRowsAffected executes a query and returns the number of rows it touched
func ExecuteWithRowsAffected(ctx context.Context, exec Execer, query string, args ...interface{}) (int64, error) {
	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandlePersistenceError("execute query", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, HandlePersistenceError("get rows affected", err)
	}
	return rows, nil
}

// Execer is satisfied by both *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(entityType, id)
		}
		return nil, HandlePersistenceError("scan "+entityType, err)
	}
	return result, nil
}
