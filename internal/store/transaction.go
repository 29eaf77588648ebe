package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/platform/logger"
)

// TxFn is a unit of work run by RunInTransaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn inside a transaction on db. The transaction is
// committed when fn returns nil and rolled back when fn fails or panics.
// A panic is re-raised after the rollback.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.ErrorContext(ctx, "failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.ErrorContext(ctx, "failed to roll back transaction after panic",
				slog.String("error", rbErr.Error()),
				slog.Any("panic", p))
		} else {
			log.ErrorContext(ctx, "rolled back transaction after panic", slog.Any("panic", p))
		}
		// ALLOW-PANIC: propagating the caller's panic
		panic(p)
	}()

	if err := fn(ctx, tx); err != nil {
		return rollback(ctx, log, tx, err)
	}

	if err := tx.Commit(); err != nil {
		log.ErrorContext(ctx, "failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}

	log.DebugContext(ctx, "transaction committed")
	return nil
}

// rollback aborts tx after fn failed with cause. cause is returned as is
// unless the rollback itself fails, in which case both are joined.
func rollback(ctx context.Context, log *slog.Logger, tx *sql.Tx, cause error) error {
	if err := tx.Rollback(); err != nil {
		log.ErrorContext(ctx, "failed to roll back transaction",
			slog.String("rollback_error", err.Error()),
			slog.String("cause", cause.Error()))
		return errors.Join(cause, fmt.Errorf("%w: rollback: %w", ErrTransactionFailed, err))
	}

	log.DebugContext(ctx, "rolled back transaction", slog.String("cause", cause.Error()))
	return cause
}
