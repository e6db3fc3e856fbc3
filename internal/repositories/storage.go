package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"backend/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Execer is satisfied by *sql.DB and *sql.Tx so seat mutations can run
// inside the transaction that carries the booking status write.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func opContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// classify maps deadline hits to the retryable timeout error; everything
// else passes through for the service layer to wrap.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.TimeoutError{Op: op, Err: err}
	}
	return err
}
