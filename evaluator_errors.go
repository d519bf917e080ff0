package figcon

import (
	"errors"
	"fmt"
	"strings"
)

// EvaluationError reports an expression that failed to compile or run. Option
// names the callable option holding the expression once it is known.
type EvaluationError struct {
	Option string
	Engine string
	Expr   string
	Source string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("figcon: ")
	if e.Option != "" {
		fmt.Fprintf(&b, "option %q: ", e.Option)
	}
	engine := e.Engine
	if engine == "" {
		engine = "unknown"
	}
	b.WriteString(engine)
	b.WriteString(" expression")
	if e.Expr != "" {
		fmt.Fprintf(&b, " %q", e.Expr)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " from %s", e.Source)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// evalSite locates an expression. Evaluators know the engine, expression and
// source; the option name is only known to the Rule built by the loader.
type evalSite struct {
	option string
	engine string
	expr   string
	source string
}

// wrap attaches the site to err. An *EvaluationError already in the chain
// keeps its populated fields and only has the empty ones filled.
func (s evalSite) wrap(err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		return &EvaluationError{
			Option: s.option,
			Engine: s.engine,
			Expr:   s.expr,
			Source: s.source,
			Err:    err,
		}
	}
	fillEmpty(&evalErr.Option, s.option)
	fillEmpty(&evalErr.Engine, s.engine)
	fillEmpty(&evalErr.Expr, s.expr)
	fillEmpty(&evalErr.Source, s.source)
	return evalErr
}

func fillEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// engineError labels failures that are not tied to a single expression, such
// as an environment that cannot be built.
func engineError(engine string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) || strings.HasPrefix(err.Error(), "figcon:") {
		return err
	}
	return fmt.Errorf("figcon: %s evaluator: %w", engine, err)
}
