package errors

import (
	"context"
	"errors"
	"log/slog"
)

// Process exit codes. Usage errors follow the flag package convention.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if TypeOf(err) == ErrTypeUsage {
		return ExitUsage
	}
	return ExitFailure
}

// Handler logs fatal errors in a consistent shape before the process exits.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// Handle logs err with its type and context attributes and returns the exit
// code the caller should terminate with.
func (h *Handler) Handle(ctx context.Context, err error) int {
	if err == nil {
		return ExitOK
	}

	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("error_type", string(TypeOf(err))),
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		for k, v := range appErr.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
	}

	code := ExitCode(err)
	if code == ExitUsage {
		h.logger.WarnContext(ctx, "invalid usage", attrs...)
	} else {
		h.logger.ErrorContext(ctx, "run failed", attrs...)
	}
	return code
}
