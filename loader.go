package figcon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigName is the conventional definition file name searched in
// location directories.
const DefaultConfigName = "config"

// knownExtensions lists the formats tried, in order, for a bare config name.
var knownExtensions = []string{".yaml", ".yml", ".toml", ".json"}

// Source is the result of loading one location.
type Source struct {
	// Path is the definition file read, empty when the location had none.
	Path      string
	Namespace Namespace
}

// Loader produces the namespace defined at a location. A location without a
// definition file yields an empty Source and no error.
type Loader interface {
	Load(location string) (Source, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(location string) (Source, error)

// Load implements Loader.
func (f LoaderFunc) Load(location string) (Source, error) {
	return f(location)
}

// FileLoaderOption configures a FileLoader.
type FileLoaderOption func(*FileLoader)

// LoaderWithFunctionRegistry resolves $func directives and exposes the
// registry to expressions.
func LoaderWithFunctionRegistry(registry *FunctionRegistry) FileLoaderOption {
	return func(l *FileLoader) {
		if registry == nil {
			return
		}
		l.registry = registry.Clone()
	}
}

// LoaderWithProgramCache shares compiled programs across loads.
func LoaderWithProgramCache(cache ProgramCache) FileLoaderOption {
	return func(l *FileLoader) {
		l.cache = cache
	}
}

// LoaderWithEvaluatorLogger attaches logger to every loaded Rule.
func LoaderWithEvaluatorLogger(logger EvaluatorLogger) FileLoaderOption {
	return func(l *FileLoader) {
		l.evalLogger = logger
	}
}

// FileLoader reads YAML, TOML or JSON definition files from disk.
type FileLoader struct {
	configName string
	registry   *FunctionRegistry
	cache      ProgramCache
	evalLogger EvaluatorLogger
	evaluators map[string]Evaluator
}

// NewFileLoader creates a loader searching directories for configName. A
// name without a known extension is tried with each supported extension.
func NewFileLoader(configName string, opts ...FileLoaderOption) *FileLoader {
	if configName == "" {
		configName = DefaultConfigName
	}
	l := &FileLoader{
		configName: configName,
		evalLogger: noopEvaluatorLogger{},
		evaluators: map[string]Evaluator{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.evalLogger == nil {
		l.evalLogger = noopEvaluatorLogger{}
	}
	return l
}

// ConfigName returns the conventional file name.
func (l *FileLoader) ConfigName() string {
	return l.configName
}

// Load resolves location to a definition file and decodes it.
func (l *FileLoader) Load(location string) (Source, error) {
	path, err := l.Resolve(location)
	if err != nil || path == "" {
		return Source{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("figcon: read %s: %w", path, err)
	}
	format := formatOf(path)
	data, err := decodeDefinitions(format, raw)
	if err != nil {
		return Source{}, &ParseError{Path: path, Format: format, Err: err}
	}
	ns, err := l.buildNamespace(path, data)
	if err != nil {
		return Source{}, err
	}
	return Source{Path: path, Namespace: ns}, nil
}

// Resolve returns the definition file for location. Directories are searched
// for the visible conventional name first and its dot-prefixed variant second.
// An empty result means the location defines nothing.
func (l *FileLoader) Resolve(location string) (string, error) {
	if location == "" {
		return "", nil
	}
	info, err := os.Stat(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("figcon: stat %s: %w", location, err)
	}
	if !info.IsDir() {
		return location, nil
	}

	candidates := l.candidates()
	for _, hidden := range []bool{false, true} {
		for _, name := range candidates {
			if hidden {
				if strings.HasPrefix(name, ".") {
					continue
				}
				name = "." + name
			}
			path := filepath.Join(location, name)
			stat, err := os.Stat(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return "", fmt.Errorf("figcon: stat %s: %w", path, err)
			}
			if stat.Mode().IsRegular() {
				return path, nil
			}
		}
	}
	return "", nil
}

func (l *FileLoader) candidates() []string {
	if hasKnownExtension(l.configName) {
		return []string{l.configName}
	}
	names := make([]string, 0, len(knownExtensions))
	for _, ext := range knownExtensions {
		names = append(names, l.configName+ext)
	}
	return names
}

func hasKnownExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range knownExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

func (l *FileLoader) evaluator(engine string) (Evaluator, error) {
	if evaluator, ok := l.evaluators[engine]; ok {
		return evaluator, nil
	}
	var opts []EvaluatorOption
	if l.cache != nil {
		opts = append(opts, EvaluatorWithProgramCache(l.cache))
	}
	if l.registry != nil {
		opts = append(opts, EvaluatorWithFunctionRegistry(l.registry))
	}
	evaluator, err := NewEvaluator(engine, opts...)
	if err != nil {
		return nil, err
	}
	l.evaluators[engine] = evaluator
	return evaluator, nil
}
