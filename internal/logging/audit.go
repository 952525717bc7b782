package logging

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// AuditEntry records one CLI evaluation.
type AuditEntry struct {
	Command    string
	TraceID    string
	Parameters map[string]string
	Success    bool
	Evaluated  int
	Error      string
	Duration   time.Duration
}

// NewAuditEntry starts an entry for command.
func NewAuditEntry(command, traceID string) *AuditEntry {
	return &AuditEntry{Command: command, TraceID: traceID}
}

// WithParameters sets the command parameters.
func (e *AuditEntry) WithParameters(params map[string]string) *AuditEntry {
	e.Parameters = params
	return e
}

// WithSuccess marks the entry successful with the number of evaluations.
func (e *AuditEntry) WithSuccess(evaluated int) *AuditEntry {
	e.Success = true
	e.Evaluated = evaluated
	return e
}

// WithError marks the entry failed.
func (e *AuditEntry) WithError(msg string) *AuditEntry {
	e.Success = false
	e.Error = msg
	return e
}

// WithDuration sets the duration since start.
func (e *AuditEntry) WithDuration(start time.Time) *AuditEntry {
	e.Duration = time.Since(start)
	return e
}

// AuditLogger writes audit entries.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditEntry)
	Enabled() bool
	Close() error
}

// AuditLoggerConfig configures NewAuditLogger.
type AuditLoggerConfig struct {
	Enabled bool
	File    string
}

type nopAuditLogger struct{}

func (nopAuditLogger) Log(context.Context, AuditEntry) {}
func (nopAuditLogger) Enabled() bool                   { return false }
func (nopAuditLogger) Close() error                    { return nil }

type fileAuditLogger struct {
	logger zerolog.Logger
	file   *os.File
}

// NewAuditLogger returns a JSON-lines audit logger, or a no-op logger when
// auditing is disabled or the file cannot be opened.
func NewAuditLogger(cfg AuditLoggerConfig) AuditLogger {
	if !cfg.Enabled {
		return nopAuditLogger{}
	}
	f, err := openLogFile(cfg.File)
	if err != nil {
		return nopAuditLogger{}
	}
	return &fileAuditLogger{
		logger: zerolog.New(f).With().Timestamp().Str("log_type", "audit").Logger(),
		file:   f,
	}
}

func (a *fileAuditLogger) Log(_ context.Context, e AuditEntry) {
	ev := a.logger.Info().
		Str("command", e.Command).
		Str("trace_id", e.TraceID).
		Bool("success", e.Success).
		Int("evaluated", e.Evaluated).
		Dur("duration", e.Duration)
	if len(e.Parameters) > 0 {
		dict := zerolog.Dict()
		for k, v := range e.Parameters {
			dict.Str(k, v)
		}
		ev = ev.Dict("parameters", dict)
	}
	if e.Error != "" {
		ev = ev.Str("error", e.Error)
	}
	ev.Msg("audit")
}

func (a *fileAuditLogger) Enabled() bool { return true }

func (a *fileAuditLogger) Close() error {
	return a.file.Close()
}

type auditLoggerKey struct{}

// ContextWithAuditLogger stores l in ctx.
func ContextWithAuditLogger(ctx context.Context, l AuditLogger) context.Context {
	return context.WithValue(ctx, auditLoggerKey{}, l)
}

// AuditLoggerFromContext returns the audit logger in ctx, or a no-op logger.
func AuditLoggerFromContext(ctx context.Context) AuditLogger {
	if ctx != nil {
		if l, ok := ctx.Value(auditLoggerKey{}).(AuditLogger); ok {
			return l
		}
	}
	return nopAuditLogger{}
}
