// Package figcon loads layered configuration from a default, a secondary and
// a primary location and deep-merges them into one queryable options object.
package figcon

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-figcon/pkg/activity"
)

// Figcon owns the merged options state and the locations it was built from.
// It is not safe for concurrent use.
type Figcon struct {
	store      *Store
	loader     Loader
	locations  Locations
	configName string
	logger     Logger
	emitter    *activity.Emitter

	snapshotID string
	sources    []loadedSource
	overridden map[string]struct{}
}

// Option configures a Figcon.
type Option func(*config)

type config struct {
	primary           string
	secondary         string
	configName        string
	loader            Loader
	logger            Logger
	evalLogger        EvaluatorLogger
	functions         *FunctionRegistry
	programCache      ProgramCache
	activityHooks     activity.Hooks
	activityConfig    activity.Config
	hasActivityConfig bool
}

// WithPrimaryLocation sets the strongest location. Defaults to the working
// directory.
func WithPrimaryLocation(path string) Option {
	return func(cfg *config) {
		cfg.primary = path
	}
}

// WithSecondaryLocation sets the middle location. Defaults to the user's home
// directory.
func WithSecondaryLocation(path string) Option {
	return func(cfg *config) {
		cfg.secondary = path
	}
}

// WithConfigName sets the conventional file name searched in location
// directories.
func WithConfigName(name string) Option {
	return func(cfg *config) {
		cfg.configName = name
	}
}

// WithLoader replaces the default FileLoader.
func WithLoader(loader Loader) Option {
	return func(cfg *config) {
		cfg.loader = loader
	}
}

// WithLogger attaches a refresh logger.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithEvaluatorLogger attaches a logger to callables built by the default
// loader.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *config) {
		cfg.evalLogger = logger
	}
}

// WithFunctionRegistry makes registry functions available to the default
// loader's $func directives and expressions. It combines with other registry
// options in any order; the first function registered under a name wins.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *config) {
		if registry == nil {
			return
		}
		if cfg.functions == nil {
			cfg.functions = registry.Clone()
			return
		}
		cfg.functions.Merge(registry)
	}
}

// WithCustomFunction registers fn under name for the default loader. A name
// already provided by an earlier option keeps its function.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

// WithProgramCache shares compiled expression programs across refreshes.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *config) {
		cfg.programCache = cache
	}
}

// WithActivityHooks emits refresh, set and delete events to hooks.
func WithActivityHooks(hooks activity.Hooks) Option {
	return func(cfg *config) {
		cfg.activityHooks = append(activity.Hooks(nil), hooks...)
	}
}

// WithActivityConfig overrides the emitter defaults. Emission is enabled by
// default once hooks are configured.
func WithActivityConfig(activityConfig activity.Config) Option {
	return func(cfg *config) {
		cfg.activityConfig = activityConfig
		cfg.hasActivityConfig = true
	}
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// New builds a Figcon and performs the first refresh. Loader errors from that
// refresh are returned unchanged.
func New(defaultLocation string, opts ...Option) (*Figcon, error) {
	cfg := applyOptions(opts)

	if cfg.primary == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("figcon: resolve working directory: %w", err)
		}
		cfg.primary = wd
	}
	if cfg.secondary == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("figcon: resolve home directory: %w", err)
		}
		cfg.secondary = home
	}
	if cfg.configName == "" {
		cfg.configName = DefaultConfigName
	}
	if cfg.loader == nil {
		cfg.loader = NewFileLoader(cfg.configName,
			LoaderWithFunctionRegistry(cfg.functions),
			LoaderWithProgramCache(cfg.programCache),
			LoaderWithEvaluatorLogger(cfg.evalLogger),
		)
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}
	activityConfig := activity.Config{Enabled: true}
	if cfg.hasActivityConfig {
		activityConfig = cfg.activityConfig
	}

	f := &Figcon{
		store:  NewStore(),
		loader: cfg.loader,
		locations: Locations{
			Default:   defaultLocation,
			Secondary: cfg.secondary,
			Primary:   cfg.primary,
		},
		configName: cfg.configName,
		logger:     cfg.logger,
		emitter:    activity.NewEmitter(cfg.activityHooks, activityConfig),
		overridden: map[string]struct{}{},
	}
	if err := f.Refresh(); err != nil {
		return nil, err
	}
	return f, nil
}

// Get returns the value stored under name or a *MissingOptionError.
func (f *Figcon) Get(name string) (Value, error) {
	value, ok := f.store.Get(name)
	if !ok {
		return nil, f.missing(name)
	}
	return value, nil
}

// Lookup resolves a dot separated path through nested records.
func (f *Figcon) Lookup(path string) (Value, error) {
	value, ok := f.store.Lookup(path)
	if !ok {
		return nil, f.missing(path)
	}
	return value, nil
}

// Has reports whether name is defined.
func (f *Figcon) Has(name string) bool {
	_, ok := f.store.Get(name)
	return ok
}

// Set stores value under name directly, bypassing the merge rules. The value
// lasts until the next refresh.
func (f *Figcon) Set(name string, value Value) {
	f.store.Set(name, value)
	f.overridden[name] = struct{}{}
	kind := "nil"
	if value != nil {
		kind = value.Kind().String()
	}
	f.emit(activity.BuildOptionSetEvent(activity.OptionEventInput{
		Name:       name,
		Kind:       kind,
		SnapshotID: f.snapshotID,
	}))
}

// Delete removes name. Deleting an absent name is a no-op.
func (f *Figcon) Delete(name string) {
	existed := f.Has(name)
	f.store.Delete(name)
	delete(f.overridden, name)
	f.emit(activity.BuildOptionDeletedEvent(activity.OptionEventInput{
		Name:       name,
		Existed:    existed,
		SnapshotID: f.snapshotID,
	}))
}

// Call invokes the Callable found at path.
func (f *Figcon) Call(path string, args ...any) (any, error) {
	value, err := f.Lookup(path)
	if err != nil {
		return nil, err
	}
	callable, ok := value.(Callable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotCallable, path)
	}
	return callable.Call(args...)
}

// Locations returns the paths used by the last successful refresh.
func (f *Figcon) Locations() Locations {
	return f.locations
}

// ConfigName returns the conventional definition file name.
func (f *Figcon) ConfigName() string {
	return f.configName
}

// Names returns the defined top level names sorted alphabetically.
func (f *Figcon) Names() []string {
	return f.store.Names()
}

// Snapshot returns a deep copy of the merged state.
func (f *Figcon) Snapshot() Namespace {
	return f.store.Snapshot()
}

// SnapshotID identifies the last successful refresh.
func (f *Figcon) SnapshotID() string {
	return f.snapshotID
}

func (f *Figcon) missing(name string) error {
	return &MissingOptionError{
		Name:       name,
		ConfigName: f.configName,
		Locations:  f.locations,
	}
}

func (f *Figcon) emit(event activity.Event) {
	if !f.emitter.Enabled() {
		return
	}
	if err := f.emitter.Emit(context.Background(), event); err != nil {
		f.logger.LogActivity(ActivityLogEvent{
			Verb:     event.Verb,
			ObjectID: event.ObjectID,
			Err:      err,
		})
	}
}
