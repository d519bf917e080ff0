package figcon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML = "yaml"
	formatTOML = "toml"
	formatJSON = "json"
)

// Directive keys turning a single-key mapping into a Callable.
const (
	directiveExpr = "$expr"
	directiveCEL  = "$cel"
	directiveJS   = "$js"
	directiveFunc = "$func"
)

var directiveEngines = map[string]string{
	directiveExpr: EngineExpr,
	directiveCEL:  EngineCEL,
	directiveJS:   EngineJS,
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML
	case ".json":
		return formatJSON
	default:
		return formatYAML
	}
}

func decodeDefinitions(format string, raw []byte) (map[string]any, error) {
	var data map[string]any
	switch format {
	case formatTOML:
		if err := toml.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
	case formatJSON:
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil
		}
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&data); err != nil {
			return nil, err
		}
		normalized, _ := normalizeJSONNumbers(data).(map[string]any)
		data = normalized
	default:
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// normalizeJSONNumbers turns json.Number into int64 when integral and float64
// otherwise.
func normalizeJSONNumbers(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return i
		}
		if f, err := typed.Float64(); err == nil {
			return f
		}
		return typed.String()
	case map[string]any:
		for key, item := range typed {
			typed[key] = normalizeJSONNumbers(item)
		}
		return typed
	case []any:
		for i, item := range typed {
			typed[i] = normalizeJSONNumbers(item)
		}
		return typed
	default:
		return value
	}
}

// isPrivateName reports names hidden from the loaded namespace.
func isPrivateName(name string) bool {
	return strings.HasPrefix(name, "__")
}

func (l *FileLoader) buildNamespace(path string, data map[string]any) (Namespace, error) {
	ns := make(Namespace, len(data))
	for name, raw := range data {
		if isPrivateName(name) || strings.HasPrefix(name, "$") {
			continue
		}
		value, err := l.buildValue(path, name, raw)
		if err != nil {
			return nil, err
		}
		ns[name] = value
	}
	return ns, nil
}

func (l *FileLoader) buildValue(path, name string, raw any) (Value, error) {
	switch typed := raw.(type) {
	case map[string]any:
		return l.buildMapping(path, name, typed)
	case map[any]any:
		fields := make(map[string]any, len(typed))
		for key, value := range typed {
			fields[fmt.Sprint(key)] = value
		}
		return l.buildMapping(path, name, fields)
	case []any:
		seq := make(Sequence, len(typed))
		for i, item := range typed {
			value, err := l.buildValue(path, fmt.Sprintf("%s[%d]", name, i), item)
			if err != nil {
				return nil, err
			}
			seq[i] = value
		}
		return seq, nil
	default:
		return ValueOf(typed), nil
	}
}

func (l *FileLoader) buildMapping(path, name string, fields map[string]any) (Value, error) {
	if directive, body, ok, err := callableDirective(fields); ok || err != nil {
		if err != nil {
			return nil, fmt.Errorf("figcon: %s: option %q: %w", path, name, err)
		}
		return l.buildCallable(path, name, directive, body)
	}
	rec := &Record{Name: name, Fields: make(Namespace, len(fields))}
	for field, raw := range fields {
		value, err := l.buildValue(path, field, raw)
		if err != nil {
			return nil, err
		}
		rec.Fields[field] = value
	}
	return rec, nil
}

func callableDirective(fields map[string]any) (string, string, bool, error) {
	if len(fields) != 1 {
		return "", "", false, nil
	}
	for key, raw := range fields {
		if key != directiveFunc {
			if _, ok := directiveEngines[key]; !ok {
				return "", "", false, nil
			}
		}
		body, ok := raw.(string)
		if !ok || strings.TrimSpace(body) == "" {
			return "", "", false, fmt.Errorf("directive %s expects a non-empty string", key)
		}
		return key, body, true, nil
	}
	return "", "", false, nil
}

func (l *FileLoader) buildCallable(path, name, directive, body string) (Value, error) {
	if directive == directiveFunc {
		fn, ok := l.registry.Lookup(body)
		if !ok {
			return nil, fmt.Errorf("figcon: %s: option %q: function %q not registered", path, name, body)
		}
		return Func{Name: body, Fn: fn}, nil
	}
	engine := directiveEngines[directive]
	evaluator, err := l.evaluator(engine)
	if err != nil {
		return nil, fmt.Errorf("figcon: %s: option %q: %w", path, name, err)
	}
	rule, err := NewRule(engine, body, path, evaluator, l.evalLogger)
	if err != nil {
		return nil, evalSite{option: name}.wrap(err)
	}
	rule.Option = name
	return rule, nil
}

// MapLoader serves namespaces from memory, keyed by location. Every load
// returns a deep copy so merges never reach back into the stored data.
type MapLoader map[string]Namespace

// Load implements Loader.
func (m MapLoader) Load(location string) (Source, error) {
	ns, ok := m[location]
	if !ok {
		return Source{}, nil
	}
	return Source{Path: location, Namespace: ns.Clone()}, nil
}
