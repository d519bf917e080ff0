package figcon

import (
	"github.com/goliatone/go-figcon/internal/hydrate"
)

// DecodeOption tunes Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	strict    bool
	useNumber bool
}

// DecodeStrict rejects fields the target type does not declare.
func DecodeStrict() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.strict = true
	}
}

// DecodeUseNumber decodes numbers into json.Number when the target is untyped.
func DecodeUseNumber() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.useNumber = true
	}
}

// Decode converts the option stored under name into T. An empty name decodes
// the whole merged state. Callables decode as their string form.
func Decode[T any](f *Figcon, name string, opts ...DecodeOption) (T, error) {
	var zero T
	cfg := decodeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ctx := hydrate.Context{Name: name}
	var payload any
	if name == "" {
		payload = ExportNamespace(f.store.state)
	} else {
		value, err := f.Lookup(name)
		if err != nil {
			return zero, err
		}
		payload = Export(value)
		if trace, err := f.Trace(topLevel(name)); err == nil {
			ctx.Location = trace.strongest().String()
		}
	}

	decoderOpts := []hydrate.DecoderOption[T]{}
	if cfg.strict {
		decoderOpts = append(decoderOpts, hydrate.WithDisallowUnknownFields[T]())
	}
	if cfg.useNumber {
		decoderOpts = append(decoderOpts, hydrate.WithUseNumber[T]())
	}
	return hydrate.NewDecoder(decoderOpts...).Decode(ctx, payload)
}
