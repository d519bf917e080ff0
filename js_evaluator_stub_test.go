//go:build !js_eval

package figcon

import (
	"strings"
	"testing"
)

func TestJSDirectiveUnavailable(t *testing.T) {
	if _, err := NewEvaluator(EngineJS); err == nil {
		t.Fatalf("expected js evaluator to be unavailable")
	}

	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "greet:\n  $js: \"'hello'\"\n")
	_, err := NewFileLoader("config").Load(dir)
	if err == nil || !strings.Contains(err.Error(), "js_eval") {
		t.Fatalf("expected a build tag hint, got %v", err)
	}
}
