package figcon

import (
	"errors"
	"strings"
	"testing"
)

func TestEvalSiteWrapCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	site := evalSite{option: "double", engine: EngineExpr, expr: "args[0] * 2", source: "/srv/app/config.yaml"}
	err := site.wrap(base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Option != "double" || evalErr.Engine != EngineExpr {
		t.Fatalf("unexpected option metadata %+v", evalErr)
	}
	if evalErr.Expr != "args[0] * 2" || evalErr.Source != "/srv/app/config.yaml" {
		t.Fatalf("unexpected expression metadata %+v", evalErr)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
	if site.wrap(nil) != nil {
		t.Fatalf("expected nil to stay nil")
	}
}

func TestEvalSiteWrapFillsEmptyFields(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{Engine: EngineExpr, Err: base}

	err := evalSite{engine: EngineCEL, expr: "rule", source: "/etc/app/config.toml"}.wrap(existing)
	err = evalSite{option: "gate"}.wrap(err)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != EngineExpr {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "rule" || existing.Source != "/etc/app/config.toml" || existing.Option != "gate" {
		t.Fatalf("empty fields should be filled, got %+v", existing)
	}
}

func TestEvaluationErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		err  *EvaluationError
		want string
	}{
		{
			name: "full",
			err:  &EvaluationError{Option: "double", Engine: EngineExpr, Expr: "args[0] * 2", Source: "config.yaml", Err: errors.New("boom")},
			want: `figcon: option "double": expr expression "args[0] * 2" from config.yaml: boom`,
		},
		{
			name: "no option",
			err:  &EvaluationError{Engine: EngineCEL, Expr: "x", Err: errors.New("boom")},
			want: `figcon: cel expression "x": boom`,
		},
		{
			name: "bare",
			err:  &EvaluationError{Err: errors.New("boom")},
			want: `figcon: unknown expression: boom`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEngineErrorKeepsLabelledErrors(t *testing.T) {
	prefixed := errors.New("figcon: already labelled")
	if got := engineError(EngineCEL, prefixed); got != prefixed {
		t.Fatalf("expected prefixed error to pass through, got %v", got)
	}
	if got := engineError(EngineCEL, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	wrapped := engineError(EngineCEL, errors.New("boom"))
	if wrapped.Error() != "figcon: cel evaluator: boom" {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}
}

func TestCallErrorNamesOption(t *testing.T) {
	dirs := newTiers(t)
	writeFile(t, dirs.primary, "config.yaml", "double:\n  $expr: args[0] * 2\n")
	var events []EvaluatorLogEvent
	fc := dirs.open(t, WithEvaluatorLogger(EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		events = append(events, event)
	})))

	_, err := fc.Call("double")
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %v", err)
	}
	if evalErr.Option != "double" {
		t.Fatalf("expected option double, got %q", evalErr.Option)
	}
	if !strings.Contains(err.Error(), `option "double"`) {
		t.Fatalf("expected option name in message, got %q", err.Error())
	}
	if len(events) != 1 || events[0].Option != "double" {
		t.Fatalf("expected logged event to carry the option, got %+v", events)
	}
}

func TestCompileErrorNamesOption(t *testing.T) {
	dirs := newTiers(t)
	writeFile(t, dirs.primary, "config.yaml", "broken:\n  $expr: 'args[0] +'\n")

	_, err := New(dirs.defaults, WithSecondaryLocation(dirs.secondary), WithPrimaryLocation(dirs.primary))
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) || evalErr.Option != "broken" {
		t.Fatalf("expected EvaluationError for broken, got %v", err)
	}
	if !strings.HasSuffix(evalErr.Source, "config.yaml") {
		t.Fatalf("expected source file, got %q", evalErr.Source)
	}
}
