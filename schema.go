package figcon

import (
	"strings"
)

// FieldDescriptor describes a dotted path and the kind of value found there.
type FieldDescriptor struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// Describe flattens the merged state into descriptors sorted by path. Records
// are descended; an empty record yields a single descriptor of kind record.
func (f *Figcon) Describe() []FieldDescriptor {
	return DescribeNamespace(f.store.state)
}

// DescribeNamespace flattens ns into field descriptors.
func DescribeNamespace(ns Namespace) []FieldDescriptor {
	descriptors := deriveFieldDescriptors(ns, "")
	if descriptors == nil {
		descriptors = []FieldDescriptor{}
	}
	return descriptors
}

func deriveFieldDescriptors(ns Namespace, prefix string) []FieldDescriptor {
	var fields []FieldDescriptor
	for _, name := range ns.Names() {
		path := joinPath(prefix, name)
		value := ns[name]
		rec, ok := value.(*Record)
		if ok && rec != nil && len(rec.Fields) > 0 {
			fields = append(fields, deriveFieldDescriptors(rec.Fields, path)...)
			continue
		}
		fields = append(fields, FieldDescriptor{
			Path: path,
			Kind: kindName(value),
		})
	}
	return fields
}

func kindName(value Value) string {
	if value == nil {
		return "nil"
	}
	return value.Kind().String()
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}
