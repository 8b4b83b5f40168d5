package utils

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"gamereview/internal/interfaces"
	"gamereview/internal/validators"
)

const transactionTimeout = 10 * time.Second

// BeginTransaction begins a new database transaction with a context deadline.
// It returns the transaction object, the transaction context, and a cancel function for the context.
// If the transaction fails to begin, the context is already canceled and a storage error is returned.
func BeginTransaction(ctx context.Context, pool interfaces.PgxPoolIface) (pgx.Tx, context.Context, context.CancelFunc, error) {
	LogMessageWithFields(ctx, "debug", "Beginning transaction...")

	transactionCtx, cancel := context.WithDeadline(ctx, time.Now().Add(transactionTimeout))

	tx, err := pool.Begin(transactionCtx)
	if err != nil {
		LogMessageWithFieldsAndError(ctx, "error", "Error beginning transaction", err)
		cancel()
		return nil, nil, nil, validators.NewStorageError("begin transaction", err)
	}

	return tx, transactionCtx, cancel, nil
}

// RollbackTransaction rolls back the given transaction if an error occurred and cancels its context.
// Errors from an already closed transaction are ignored.
func RollbackTransaction(ctx context.Context, tx pgx.Tx, cancel context.CancelFunc, err error) {
	defer cancel()

	if err == nil {
		return
	}

	LogMessageWithFieldsAndError(ctx, "debug", "Rolling back transaction", err)
	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
		if errors.Is(rollbackErr, pgx.ErrTxClosed) {
			return
		}
		LogMessageWithFieldsAndError(ctx, "error", "Error rolling back transaction", rollbackErr)
		return
	}
	LogMessageWithFields(ctx, "debug", "Transaction rolled back")
}

// CommitTransaction attempts to commit the given transaction.
func CommitTransaction(ctx context.Context, tx pgx.Tx) error {
	LogMessageWithFields(ctx, "debug", "Committing transaction...")

	if err := tx.Commit(ctx); err != nil {
		LogMessageWithFieldsAndError(ctx, "error", "Error committing transaction", err)
		return validators.NewStorageError("commit transaction", err)
	}

	LogMessageWithFields(ctx, "debug", "Transaction committed")
	return nil
}
