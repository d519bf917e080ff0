package activity

import (
	"strings"
	"time"
)

// Verbs emitted for options lifecycle events.
const (
	VerbRefreshed = "figcon.refreshed"
	VerbSet       = "figcon.option.set"
	VerbDeleted   = "figcon.option.deleted"
)

// Object types carried by options lifecycle events.
const (
	ObjectOptions = "options"
	ObjectOption  = "option"
)

// Metadata keys set by the event builders.
const (
	MetaSnapshotID = "snapshot_id"
	MetaNames      = "names"
	MetaLocations  = "locations"
	MetaSources    = "sources"
	MetaKind       = "kind"
	MetaExisted    = "existed"
)

// RefreshEventInput describes a completed refresh.
type RefreshEventInput struct {
	SnapshotID string
	Locations  map[string]string
	Sources    map[string]string
	Names      int
	OccurredAt time.Time
}

// OptionEventInput describes a direct mutation of one option.
type OptionEventInput struct {
	Name       string
	Kind       string
	Existed    bool
	SnapshotID string
	OccurredAt time.Time
}

// BuildRefreshEvent constructs an event for a completed refresh keyed by its
// snapshot ID.
func BuildRefreshEvent(input RefreshEventInput) Event {
	metadata := map[string]any{MetaNames: input.Names}
	if len(input.Locations) > 0 {
		metadata[MetaLocations] = cloneStrings(input.Locations)
	}
	if len(input.Sources) > 0 {
		metadata[MetaSources] = cloneStrings(input.Sources)
	}
	objectID := strings.TrimSpace(input.SnapshotID)
	if objectID == "" {
		objectID = ObjectOptions
	}
	return Event{
		Verb:       VerbRefreshed,
		ObjectType: ObjectOptions,
		ObjectID:   objectID,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

// BuildOptionSetEvent constructs an event for a direct set.
func BuildOptionSetEvent(input OptionEventInput) Event {
	metadata := optionMetadata(input)
	if input.Kind != "" {
		metadata[MetaKind] = input.Kind
	}
	return buildOptionEvent(VerbSet, input, metadata)
}

// BuildOptionDeletedEvent constructs an event for a delete.
func BuildOptionDeletedEvent(input OptionEventInput) Event {
	metadata := optionMetadata(input)
	metadata[MetaExisted] = input.Existed
	return buildOptionEvent(VerbDeleted, input, metadata)
}

func buildOptionEvent(verb string, input OptionEventInput, metadata map[string]any) Event {
	return Event{
		Verb:       verb,
		ObjectType: ObjectOption,
		ObjectID:   strings.TrimSpace(input.Name),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func optionMetadata(input OptionEventInput) map[string]any {
	metadata := map[string]any{}
	if input.SnapshotID != "" {
		metadata[MetaSnapshotID] = input.SnapshotID
	}
	return metadata
}

func cloneStrings(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
