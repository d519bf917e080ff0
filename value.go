package figcon

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the variant carried by a Value.
type Kind int

const (
	KindScalar Kind = iota
	KindCallable
	KindRecord
	KindSequence
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindCallable:
		return "callable"
	case KindRecord:
		return "record"
	case KindSequence:
		return "sequence"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Value is a single configuration value. Only *Record values take part in
// recursive merges; every other variant is an overwrite leaf.
type Value interface {
	Kind() Kind
	sealed()
}

// Namespace maps option names to values. It is the unit produced by a loader
// and the shape of the merged options state.
type Namespace map[string]Value

// Names returns the namespace keys sorted alphabetically.
func (n Namespace) Names() []string {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone deep copies records and sequences. Callables and opaque payloads are
// shared with the original.
func (n Namespace) Clone() Namespace {
	if n == nil {
		return nil
	}
	out := make(Namespace, len(n))
	for name, value := range n {
		out[name] = CloneValue(value)
	}
	return out
}

// Scalar wraps a string, number, bool or nil.
type Scalar struct {
	V any
}

func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) sealed()    {}

// Sequence is an ordered list of values. Sequences are replaced, never merged.
type Sequence []Value

func (Sequence) Kind() Kind { return KindSequence }
func (Sequence) sealed()    {}

// Opaque carries any value that is not one of the other variants.
type Opaque struct {
	V any
}

func (Opaque) Kind() Kind { return KindOpaque }
func (Opaque) sealed()    {}

// Record is a named bag of fields. Records are the only values merged field by
// field; two records are merged only when they are distinct instances.
type Record struct {
	Name   string
	Fields Namespace
}

// NewRecord builds a record from fields, converting each entry with ValueOf.
func NewRecord(name string, fields map[string]any) *Record {
	rec := &Record{Name: name, Fields: make(Namespace, len(fields))}
	for key, value := range fields {
		rec.Fields[key] = ValueOf(value)
	}
	return rec
}

func (*Record) Kind() Kind { return KindRecord }
func (*Record) sealed()    {}

// Get returns the named field.
func (r *Record) Get(field string) (Value, bool) {
	if r == nil || r.Fields == nil {
		return nil, false
	}
	value, ok := r.Fields[field]
	return value, ok
}

// Lookup walks a dot separated path through nested records.
func (r *Record) Lookup(path string) (Value, bool) {
	if r == nil {
		return nil, false
	}
	return lookupPath(r.Fields, path)
}

func lookupPath(fields Namespace, path string) (Value, bool) {
	if fields == nil || path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	current, ok := fields[parts[0]]
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		rec, isRecord := current.(*Record)
		if !isRecord {
			return nil, false
		}
		current, ok = rec.Get(part)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// ValueOf converts plain Go data into a Value. Maps become records, slices
// become sequences and functions become Func callables.
func ValueOf(v any) Value {
	switch typed := v.(type) {
	case nil:
		return Scalar{}
	case Value:
		return typed
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return Scalar{V: typed}
	case Function:
		return Func{Fn: typed}
	case func(...any) (any, error):
		return Func{Fn: typed}
	case map[string]any:
		return NewRecord("", typed)
	case map[any]any:
		fields := make(map[string]any, len(typed))
		for key, value := range typed {
			fields[fmt.Sprint(key)] = value
		}
		return NewRecord("", fields)
	case []any:
		seq := make(Sequence, len(typed))
		for i, item := range typed {
			seq[i] = ValueOf(item)
		}
		return seq
	case []string:
		seq := make(Sequence, len(typed))
		for i, item := range typed {
			seq[i] = Scalar{V: item}
		}
		return seq
	default:
		return Opaque{V: typed}
	}
}

// CloneValue deep copies records and sequences reachable from v.
func CloneValue(v Value) Value {
	switch typed := v.(type) {
	case *Record:
		if typed == nil {
			return typed
		}
		return &Record{Name: typed.Name, Fields: typed.Fields.Clone()}
	case Sequence:
		if typed == nil {
			return typed
		}
		out := make(Sequence, len(typed))
		for i, item := range typed {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Export converts v back into plain Go data: records become map[string]any,
// sequences become []any and scalars unwrap. Callables are returned as is.
func Export(v Value) any {
	switch typed := v.(type) {
	case nil:
		return nil
	case Scalar:
		return typed.V
	case Opaque:
		return typed.V
	case Sequence:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Export(item)
		}
		return out
	case *Record:
		if typed == nil {
			return nil
		}
		return ExportNamespace(typed.Fields)
	default:
		return v
	}
}

// ExportNamespace converts every entry of n with Export.
func ExportNamespace(n Namespace) map[string]any {
	out := make(map[string]any, len(n))
	for name, value := range n {
		out[name] = Export(value)
	}
	return out
}
