package logging

import (
	"context"
	"crypto/rand"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// EnvTraceID lets a caller pin the trace ID of an invocation.
const EnvTraceID = "ESGCALC_TRACE_ID"

type traceIDKey struct{}

// ContextWithTraceID stores traceID in ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID in ctx, then ESGCALC_TRACE_ID, then a new ULID.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	if id := os.Getenv(EnvTraceID); id != "" {
		return id
	}
	return GenerateTraceID()
}

// GenerateTraceID returns a new ULID string.
func GenerateTraceID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// TraceHook adds trace_id to events logged with a context that carries one.
type TraceHook struct{}

// Run implements zerolog.Hook.
func (TraceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id := TraceIDFromContext(e.GetCtx()); id != "" {
		e.Str("trace_id", id)
	}
}
