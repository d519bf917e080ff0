package figcon

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValueOf(t *testing.T) {
	fn := func(...any) (any, error) { return nil, nil }

	cases := []struct {
		name string
		in   any
		kind Kind
	}{
		{name: "nil", in: nil, kind: KindScalar},
		{name: "string", in: "x", kind: KindScalar},
		{name: "json number", in: json.Number("1.5"), kind: KindScalar},
		{name: "func", in: fn, kind: KindCallable},
		{name: "registry function", in: Function(fn), kind: KindCallable},
		{name: "map", in: map[string]any{"a": 1}, kind: KindRecord},
		{name: "yaml map", in: map[any]any{1: "a"}, kind: KindRecord},
		{name: "slice", in: []any{1, "a"}, kind: KindSequence},
		{name: "strings", in: []string{"a"}, kind: KindSequence},
		{name: "struct", in: struct{ A int }{A: 1}, kind: KindOpaque},
		{name: "value", in: Scalar{V: 1}, kind: KindScalar},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValueOf(tc.in).Kind(); got != tc.kind {
				t.Fatalf("expected %s, got %s", tc.kind, got)
			}
		})
	}
}

func TestExportRoundTrip(t *testing.T) {
	data := map[string]any{
		"name":  "snuffler",
		"tags":  []any{"a", "b"},
		"phase": map[string]any{"P": 0},
	}
	rec := NewRecord("root", data)
	if got := Export(rec); !reflect.DeepEqual(data, got) {
		t.Fatalf("unexpected export:\nwant: %v\n got: %v", data, got)
	}
	if Export(nil) != nil {
		t.Fatalf("expected nil export")
	}
}

func TestNamespaceClone(t *testing.T) {
	ns := Namespace{
		"rec": NewRecord("rec", map[string]any{"nested": map[string]any{"a": 1}}),
		"seq": Sequence{Scalar{V: 1}},
	}
	clone := ns.Clone()

	clone["rec"].(*Record).Fields["nested"].(*Record).Fields["a"] = Scalar{V: 2}
	clone["seq"].(Sequence)[0] = Scalar{V: 9}

	if v, _ := ns["rec"].(*Record).Lookup("nested.a"); Export(v) != 1 {
		t.Fatalf("expected original record to be untouched, got %v", Export(v))
	}
	if Export(ns["seq"].(Sequence)[0]) != 1 {
		t.Fatalf("expected original sequence to be untouched")
	}
	if Namespace(nil).Clone() != nil {
		t.Fatalf("expected nil clone of nil namespace")
	}
}

func TestRecordLookup(t *testing.T) {
	rec := NewRecord("catalog", map[string]any{
		"tibble": map[string]any{"old": true},
		"agency": "MIRARCO",
	})

	if v, ok := rec.Lookup("tibble.old"); !ok || Export(v) != true {
		t.Fatalf("expected nested lookup, got %v %v", v, ok)
	}
	for _, path := range []string{"", "absent", "agency.deeper", "tibble.absent"} {
		if _, ok := rec.Lookup(path); ok {
			t.Fatalf("expected %q to be missing", path)
		}
	}
	var nilRecord *Record
	if _, ok := nilRecord.Get("x"); ok {
		t.Fatalf("expected nil record lookup to fail")
	}
}

func TestNamespaceNamesSorted(t *testing.T) {
	ns := Namespace{"b": Scalar{}, "a": Scalar{}, "c": Scalar{}}
	if got := ns.Names(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected order %v", got)
	}
}
