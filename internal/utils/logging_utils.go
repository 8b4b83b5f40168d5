// Package utils provides logging, transaction and password helpers shared by the entities and managers.
package utils

import (
	"context"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const defaultServiceName = "gamereview"

func GenerateTraceId() string {
	return uuid.New().String()
}

// ExtractServiceName returns the service name logged with every entry, taken from SERVICE_NAME.
func ExtractServiceName() string {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = defaultServiceName
	}
	return service
}

func LogEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	case "panic":
		entry.Panic(message)
	default:
		entry.Info(message)
	}
}

func LogMessage(level, message string) {
	entry := log.WithFields(log.Fields{
		"service": ExtractServiceName(),
	})

	LogEntry(entry, level, message)
}

// LogMessageWithFields logs message with the service name and, if ctx carries one, the trace id.
func LogMessageWithFields(ctx context.Context, level, message string) {
	LogEntry(entryFromContext(ctx), level, message)
}

func LogMessageWithFieldsAndError(ctx context.Context, level, message string, err error) {
	LogEntry(entryFromContext(ctx).WithError(err), level, message)
}

func entryFromContext(ctx context.Context) *log.Entry {
	fields := log.Fields{
		"service": ExtractServiceName(),
	}
	if traceId, ok := ctx.Value(TraceIdKey).(string); ok {
		fields["traceId"] = traceId
	}
	return log.WithFields(fields)
}
