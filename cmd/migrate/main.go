// Package main creates the reviewer and review tables in the configured database.
package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"gamereview/internal"
)

func main() {
	app := internal.Init(context.Background())
	defer app.Close()

	log.Info("Database schema is up to date")
}
