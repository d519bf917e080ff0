package figcon

import (
	"encoding/json"
	"fmt"
	"time"
)

// Callable is an atomic function value. Callables are never merged: an
// incoming callable always replaces whatever the base held.
type Callable interface {
	Value
	Call(args ...any) (any, error)
}

// Func wraps a Go function as a Callable.
type Func struct {
	Name string
	Fn   Function
}

func (Func) Kind() Kind { return KindCallable }
func (Func) sealed()    {}

// Call invokes the wrapped function.
func (f Func) Call(args ...any) (any, error) {
	if f.Fn == nil {
		return nil, fmt.Errorf("figcon: function %q is nil", f.Name)
	}
	return f.Fn(args...)
}

func (f Func) String() string {
	if f.Name == "" {
		return "func()"
	}
	return fmt.Sprintf("func %s()", f.Name)
}

// MarshalJSON renders the function by name.
func (f Func) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// MarshalYAML renders the function by name.
func (f Func) MarshalYAML() (any, error) {
	return f.String(), nil
}

// Rule is a Callable backed by a compiled expression.
type Rule struct {
	// Option is the name the rule was defined under, empty for rules built
	// outside a loader.
	Option string
	Engine string
	Expr   string
	// Source is the definition file the rule was loaded from.
	Source string

	compiled CompiledRule
	logger   EvaluatorLogger
}

// NewRule compiles expr with evaluator.
func NewRule(engine, expr, source string, evaluator Evaluator, logger EvaluatorLogger) (*Rule, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("figcon: %s evaluator not configured", engine)
	}
	compiled, err := evaluator.Compile(expr)
	if err != nil {
		return nil, evalSite{engine: engine, expr: expr, source: source}.wrap(err)
	}
	if logger == nil {
		logger = noopEvaluatorLogger{}
	}
	return &Rule{
		Engine:   engine,
		Expr:     expr,
		Source:   source,
		compiled: compiled,
		logger:   logger,
	}, nil
}

func (*Rule) Kind() Kind { return KindCallable }
func (*Rule) sealed()    {}

// Call evaluates the expression with args bound to the args variable.
func (r *Rule) Call(args ...any) (any, error) {
	ctx := RuleContext{Args: args, Source: r.Source}.withDefaults()
	start := time.Now()
	value, err := r.compiled.Evaluate(ctx)
	err = evalSite{option: r.Option, engine: r.Engine, expr: r.Expr, source: ctx.sourceLabel()}.wrap(err)
	r.logger.LogEvaluation(EvaluatorLogEvent{
		Option:   r.Option,
		Engine:   r.Engine,
		Expr:     r.Expr,
		Source:   ctx.sourceLabel(),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s(%s)", r.Engine, r.Expr)
}

// MarshalJSON renders the rule as engine(expression).
func (r *Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// MarshalYAML renders the rule as engine(expression).
func (r *Rule) MarshalYAML() (any, error) {
	return r.String(), nil
}
