package figcon

import (
	"encoding/json"
	"strings"
)

// Trace records which locations defined a top level name during the last
// refresh, strongest location first.
type Trace struct {
	Name       string       `json:"name"`
	SnapshotID string       `json:"snapshot_id,omitempty"`
	Overridden bool         `json:"overridden,omitempty"`
	Layers     []Provenance `json:"layers"`
}

// Provenance details how one location contributed to a traced name.
type Provenance struct {
	Location Location `json:"location"`
	Path     string   `json:"path"`
	Source   string   `json:"source,omitempty"`
	Kind     string   `json:"kind,omitempty"`
	Found    bool     `json:"found"`
}

// Trace reports the provenance of name. Overridden is set when Set replaced
// the value after the last refresh.
func (f *Figcon) Trace(name string) (Trace, error) {
	if !f.Has(name) {
		return Trace{}, f.missing(name)
	}
	_, overridden := f.overridden[name]
	trace := Trace{
		Name:       name,
		SnapshotID: f.snapshotID,
		Overridden: overridden,
		Layers:     make([]Provenance, 0, len(f.sources)),
	}
	for i := len(f.sources) - 1; i >= 0; i-- {
		src := f.sources[i]
		entry := Provenance{
			Location: src.location,
			Path:     src.path,
			Source:   src.source,
		}
		if kind, ok := src.kinds[name]; ok {
			entry.Found = true
			entry.Kind = kind.String()
		}
		trace.Layers = append(trace.Layers, entry)
	}
	return trace, nil
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

// strongest returns the strongest location that defined the name, or
// LocationUnknown when the value only exists through Set.
func (t Trace) strongest() Location {
	for _, layer := range t.Layers {
		if layer.Found {
			return layer.Location
		}
	}
	return LocationUnknown
}

func topLevel(path string) string {
	name, _, _ := strings.Cut(path, ".")
	return name
}
