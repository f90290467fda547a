// Package logger configures the application's logging and observability.
//
// It builds zerolog loggers (console format locally, JSON elsewhere) and
// owns the optional New Relic application instance. When New Relic is
// configured, log output is routed through the zerologWriter integration
// so log lines are decorated with linking metadata and forwarded to APM.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/wellnest-hq/wellness-api/internal/config"
)

// LoggerService owns the New Relic application instance. It exists even
// when New Relic is disabled; in that case GetApplication returns nil and
// every caller degrades to a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService initializes New Relic when a license key is configured.
// Without a key it returns a service with a nil application, which is a
// valid, fully degraded state.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	obs := cfg.Observability
	if obs == nil || obs.NewRelic.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(obs.ServiceName),
		newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
	}
	if obs.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
	}

	app, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize New Relic: %w", err)
	}

	return &LoggerService{nrApp: app}, nil
}

// GetApplication returns the New Relic application, or nil when disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes pending telemetry. Safe to call when disabled.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s != nil && s.nrApp != nil {
		s.nrApp.Shutdown(timeout)
	}
}

// New builds the application's main structured logger.
//
// Format and level come from the observability config; when a New Relic
// application is present the writer is wrapped so logs carry trace
// linking metadata.
func New(cfg *config.Config, service *LoggerService) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" || cfg.Primary.Env == "local" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	if app := service.GetApplication(); app != nil {
		w := zerologWriter.New(out, app)
		out = &w
	}

	log := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &log
}

// NewPgxLogger builds a logger dedicated to SQL trace output. It always
// writes console format: SQL logging is only enabled in the local env,
// where pretty output beats JSON.
func NewPgxLogger(level zerolog.Level) *zerolog.Logger {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(level).With().
		Timestamp().
		Str("component", "pgx").
		Logger()
	return &log
}

// Pgx tracelog levels, mirrored here so callers don't need the tracelog
// import just to pick a verbosity.
const (
	pgxTraceLevelNone  = 1
	pgxTraceLevelError = 2
	pgxTraceLevelWarn  = 3
	pgxTraceLevelInfo  = 4
	pgxTraceLevelDebug = 5
	pgxTraceLevelTrace = 6
)

// GetPgxTraceLogLevel maps a zerolog level onto the pgx tracelog level
// scale (1=none .. 6=trace).
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return pgxTraceLevelTrace
	case zerolog.DebugLevel:
		return pgxTraceLevelDebug
	case zerolog.InfoLevel:
		return pgxTraceLevelInfo
	case zerolog.WarnLevel:
		return pgxTraceLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return pgxTraceLevelError
	default:
		return pgxTraceLevelNone
	}
}

// WithTraceContext returns a child logger carrying trace.id and span.id
// from the given transaction, so log lines correlate with traces.
func WithTraceContext(log zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return log
	}
	md := txn.GetTraceMetadata()
	builder := log.With()
	if md.TraceID != "" {
		builder = builder.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		builder = builder.Str("span.id", md.SpanID)
	}
	return builder.Logger()
}
