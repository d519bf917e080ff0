// Package zaplog adapts figcon logging hooks to go.uber.org/zap.
package zaplog

import (
	"fmt"

	"github.com/goliatone/go-figcon"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger implements figcon.Logger and figcon.EvaluatorLogger.
type Logger struct {
	log *zap.Logger
}

var (
	_ figcon.Logger          = (*Logger)(nil)
	_ figcon.EvaluatorLogger = (*Logger)(nil)
)

// New wraps log. A nil logger discards everything.
func New(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log.Named("figcon")}
}

// NewProduction builds a JSON logger with ISO8601 timestamps.
func NewProduction() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// LogLoad records one location load. Failures log at error level, locations
// without a definition file at debug.
func (l *Logger) LogLoad(event figcon.LoadEvent) {
	fields := []zap.Field{
		zap.Stringer("location", event.Location),
		zap.String("path", event.Path),
		zap.Duration("duration", event.Duration),
	}
	switch {
	case event.Err != nil:
		l.log.Error("load failed", append(fields, zap.Error(event.Err))...)
	case event.Source == "":
		l.log.Debug("no definitions", fields...)
	default:
		l.log.Info("definitions loaded", append(fields,
			zap.String("source", event.Source),
			zap.Int("defined", event.Defined),
		)...)
	}
}

// LogActivity records an activity hook failure.
func (l *Logger) LogActivity(event figcon.ActivityLogEvent) {
	l.log.Warn("activity hook failed",
		zap.String("verb", event.Verb),
		zap.String("object_id", event.ObjectID),
		zap.Error(event.Err),
	)
}

// LogEvaluation records a callable invocation.
func (l *Logger) LogEvaluation(event figcon.EvaluatorLogEvent) {
	fields := []zap.Field{
		zap.String("engine", event.Engine),
		zap.String("expr", event.Expr),
		zap.Duration("duration", event.Duration),
	}
	if event.Option != "" {
		fields = append(fields, zap.String("option", event.Option))
	}
	if event.Source != "" {
		fields = append(fields, zap.String("source", event.Source))
	}
	if event.Err != nil {
		l.log.Error("evaluation failed", append(fields, zap.Error(event.Err))...)
		return
	}
	l.log.Debug("evaluated", fields...)
}
