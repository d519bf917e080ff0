package figcon

import "time"

// EvaluatorLogEvent describes one callable invocation.
type EvaluatorLogEvent struct {
	Option   string
	Engine   string
	Expr     string
	Source   string
	Duration time.Duration
	Err      error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// LoadEvent describes one location load performed by Refresh.
type LoadEvent struct {
	Location Location
	Path     string
	// Source is the definition file read, empty when none was found.
	Source   string
	Defined  int
	Duration time.Duration
	Err      error
}

// ActivityLogEvent reports an activity hook failure.
type ActivityLogEvent struct {
	Verb     string
	ObjectID string
	Err      error
}

// Logger records refresh level events. The merge itself never logs.
type Logger interface {
	LogLoad(LoadEvent)
	LogActivity(ActivityLogEvent)
}

type noopLogger struct{}

func (noopLogger) LogLoad(LoadEvent)            {}
func (noopLogger) LogActivity(ActivityLogEvent) {}
