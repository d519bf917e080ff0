package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHooksNotifyJoinsErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	capture := &CaptureHook{}
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return first }),
		nil,
		capture,
		HookFunc(func(context.Context, Event) error { return second }),
	}

	err := hooks.Notify(context.Background(), Event{Verb: VerbSet, ObjectType: ObjectOption, ObjectID: "box_alpha"})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected joined errors, got %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected capture hook to still run, got %d events", len(capture.Events))
	}
}

func TestHooksNotifyDropsIncompleteEvents(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}

	if err := hooks.Notify(context.Background(), Event{Verb: VerbSet, ObjectType: ObjectOption}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected incomplete event to be dropped, got %d", len(capture.Events))
	}
}

func TestNormalizeEventTrimsAndClones(t *testing.T) {
	metadata := map[string]any{"kind": "scalar"}
	event := NormalizeEvent(Event{
		Verb:       "  " + VerbSet + " ",
		ObjectType: ObjectOption,
		ObjectID:   " box_alpha ",
		Metadata:   metadata,
	})

	if event.Verb != VerbSet || event.ObjectID != "box_alpha" {
		t.Fatalf("expected trimmed fields, got %+v", event)
	}
	if event.OccurredAt.IsZero() {
		t.Fatalf("expected timestamp to be defaulted")
	}
	event.Metadata["kind"] = "record"
	if metadata["kind"] != "scalar" {
		t.Fatalf("expected metadata to be cloned")
	}
}

func TestEmitterAppliesDefaults(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true, ActorID: "ops"})

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := emitter.Emit(context.Background(), Event{
		Verb:       VerbDeleted,
		ObjectType: ObjectOption,
		ObjectID:   "box_alpha",
		OccurredAt: at,
	}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(capture.Events))
	}
	got := capture.Events[0]
	if got.Channel != DefaultChannel {
		t.Fatalf("expected default channel, got %q", got.Channel)
	}
	if got.ActorID != "ops" {
		t.Fatalf("expected actor ops, got %q", got.ActorID)
	}
	if !got.OccurredAt.Equal(at) {
		t.Fatalf("expected timestamp to be preserved, got %v", got.OccurredAt)
	}
}

func TestEmitterDisabled(t *testing.T) {
	capture := &CaptureHook{}
	cases := []*Emitter{
		NewEmitter(Hooks{capture}, Config{Enabled: false}),
		NewEmitter(Hooks{nil}, Config{Enabled: true}),
		nil,
	}
	for _, emitter := range cases {
		if emitter.Enabled() {
			t.Fatalf("expected emitter to be disabled")
		}
		if err := emitter.Emit(context.Background(), Event{Verb: VerbSet, ObjectType: ObjectOption, ObjectID: "x"}); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events, got %d", len(capture.Events))
	}
}

func TestCaptureHookFiltersVerbs(t *testing.T) {
	capture := &CaptureHook{Verbs: []string{VerbDeleted}}
	hooks := Hooks{capture}
	ctx := context.Background()
	_ = hooks.Notify(ctx, BuildOptionSetEvent(OptionEventInput{Name: "box_alpha", SnapshotID: "snap-1"}))
	_ = hooks.Notify(ctx, BuildOptionDeletedEvent(OptionEventInput{Name: "box_alpha", Existed: true, SnapshotID: "snap-1"}))

	if len(capture.Events) != 1 {
		t.Fatalf("expected only the delete to be kept, got %d", len(capture.Events))
	}
	last, ok := capture.Last()
	if !ok || last.Verb != VerbDeleted || last.ObjectID != "box_alpha" {
		t.Fatalf("unexpected last event %+v", last)
	}
	if _, ok := (&CaptureHook{}).Last(); ok {
		t.Fatalf("expected empty capture to report no last event")
	}
}

func TestEventSnapshotID(t *testing.T) {
	cases := []struct {
		name  string
		event Event
		want  string
	}{
		{name: "refresh", event: BuildRefreshEvent(RefreshEventInput{SnapshotID: "snap-1"}), want: "snap-1"},
		{name: "refresh without id", event: BuildRefreshEvent(RefreshEventInput{}), want: ""},
		{name: "set", event: BuildOptionSetEvent(OptionEventInput{Name: "a", SnapshotID: "snap-2"}), want: "snap-2"},
		{name: "delete without id", event: BuildOptionDeletedEvent(OptionEventInput{Name: "a"}), want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.event.SnapshotID(); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCaptureHookSnapshots(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}
	ctx := context.Background()
	_ = hooks.Notify(ctx, BuildRefreshEvent(RefreshEventInput{SnapshotID: "snap-1"}))
	_ = hooks.Notify(ctx, BuildOptionSetEvent(OptionEventInput{Name: "a"}))
	_ = hooks.Notify(ctx, BuildOptionSetEvent(OptionEventInput{Name: "b", SnapshotID: "snap-1"}))

	got := capture.Snapshots()
	if len(got) != 2 || got[0] != "snap-1" || got[1] != "snap-1" {
		t.Fatalf("unexpected snapshots %v", got)
	}
}
