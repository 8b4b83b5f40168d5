// Package interfaces declares the storage contracts the entities and managers depend on.
package interfaces

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier runs single statements. A *pgxpool.Pool, a *pgx.Conn and a pgx.Tx all satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxPoolIface interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
