package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/audit-planner/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// serviceLogger resolves the effective logger for one service call. A
// request-scoped logger from the context wins over the injected base.
func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = defaultLogger(base)
	}

	pairs := append([]any{"service", serviceName}, attrs...)
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	return logger.With(pairs...)
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrUnknownTheme):
		return "unknown_theme"
	case errors.Is(err, ErrHasDependencies):
		return "has_dependencies"
	case errors.Is(err, ErrSystemTheme):
		return "system_theme"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
