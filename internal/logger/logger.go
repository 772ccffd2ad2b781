package logger

import (
	"context"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Logger emits structured JSON logs with a fixed set of fields per
// entry: timestamp, service, hostname, action and request_id.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a logger for the named service at the given level.
func New(service, level string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// GenerateRequestID returns a new unique request identifier.
func GenerateRequestID() string {
	return uuid.New().String()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Info(action, requestID, message string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, action, requestID, message, fields, nil)
}

func (l *Logger) Debug(action, requestID, message string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, action, requestID, message, fields, nil)
}

func (l *Logger) Error(action, requestID, message string, err error, fields map[string]interface{}) {
	l.log(slog.LevelError, action, requestID, message, fields, err)
}

func (l *Logger) log(level slog.Level, action, requestID, message string, fields map[string]interface{}, err error) {
	attrs := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}

	for key, value := range fields {
		attrs = append(attrs, slog.Any(key, value))
	}

	if err != nil {
		attrs = append(attrs, slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("stack", string(debug.Stack())),
		))
	}

	l.handler.LogAttrs(context.TODO(), level, message, attrs...)
}
