package logging

import (
	"context"
	"log/slog"
)

type operationKey struct{}

// ContextWithOperation records the operation name for later log records.
func ContextWithOperation(ctx context.Context, operation string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, operationKey{}, operation)
}

// OperationFromContext returns the operation stored by ContextWithOperation.
func OperationFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	op, ok := ctx.Value(operationKey{}).(string)
	return op, ok && op != ""
}

// WithContext returns logger tagged with the operation carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if op, ok := OperationFromContext(ctx); ok {
		return logger.With(String(FieldOperation, op))
	}
	return logger
}
