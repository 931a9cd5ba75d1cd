package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey contextKey = "user_id"
	// CallerKindKey is the context key for the caller kind (citizen, employee, admin)
	CallerKindKey contextKey = "caller_kind"
	// AgencyKey is the context key for the employee's agency
	AgencyKey contextKey = "agency"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds request ID to context and returns enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enrichedLogger := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// WithUserID adds user ID to context and returns enriched logger
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	enrichedLogger := logger.With(zap.String("user_id", userID))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// WithCallerKind adds the caller kind to context and returns enriched logger
func WithCallerKind(ctx context.Context, logger *zap.Logger, kind string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, CallerKindKey, kind)
	enrichedLogger := logger.With(zap.String("caller_kind", kind))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// WithAgency adds the employee's agency to context and returns enriched logger
func WithAgency(ctx context.Context, logger *zap.Logger, agency string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, AgencyKey, agency)
	enrichedLogger := logger.With(zap.String("agency", agency))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetUserID retrieves user ID from context
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetCallerKind retrieves the caller kind from context
func GetCallerKind(ctx context.Context) string {
	if kind, ok := ctx.Value(CallerKindKey).(string); ok {
		return kind
	}
	return ""
}

// GetAgency retrieves the employee's agency from context
func GetAgency(ctx context.Context) string {
	if agency, ok := ctx.Value(AgencyKey).(string); ok {
		return agency
	}
	return ""
}
