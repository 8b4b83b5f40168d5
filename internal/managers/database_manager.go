// Package managers holds the account workflows of the service and the database and mail resources they use.
package managers

import (
	log "github.com/sirupsen/logrus"

	"gamereview/internal/interfaces"
)

// DatabaseMgr hands out the connection pool the repositories run on.
type DatabaseMgr interface {
	GetPool() interfaces.PgxPoolIface
}

// DatabaseManager is responsible for managing the database connection pool.
type DatabaseManager struct {
	Pool interfaces.PgxPoolIface
}

func (dbMgr *DatabaseManager) GetPool() interfaces.PgxPoolIface {
	return dbMgr.Pool
}

// NewDatabaseManager wraps the given pool.
func NewDatabaseManager(pool interfaces.PgxPoolIface) DatabaseMgr {
	log.Info("Initializing database manager")
	return &DatabaseManager{Pool: pool}
}
