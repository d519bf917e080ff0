package figcon

import (
	"reflect"
	"testing"
)

func TestStoreOperations(t *testing.T) {
	store := NewStore()
	store.Merge(Namespace{"snuffler": NewRecord("snuffler", map[string]any{"box_alpha": 42})})
	store.Merge(Namespace{"snuffler": NewRecord("snuffler", map[string]any{"box_alpha": 84})})
	store.Set("basic", Scalar{V: 1})

	if store.Len() != 2 {
		t.Fatalf("expected 2 names, got %d", store.Len())
	}
	if got := store.Names(); !reflect.DeepEqual(got, []string{"basic", "snuffler"}) {
		t.Fatalf("unexpected names %v", got)
	}
	if v, ok := store.Lookup("snuffler.box_alpha"); !ok || Export(v) != 84 {
		t.Fatalf("expected merged value, got %v", v)
	}

	snapshot := store.Snapshot()
	snapshot["snuffler"].(*Record).Fields["box_alpha"] = Scalar{V: 0}
	if v, _ := store.Lookup("snuffler.box_alpha"); Export(v) != 84 {
		t.Fatalf("expected snapshot to be detached")
	}

	store.Delete("basic")
	store.Delete("basic")
	if _, ok := store.Get("basic"); ok {
		t.Fatalf("expected basic to be deleted")
	}

	store.Clear()
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestStoreZeroValue(t *testing.T) {
	var set Store
	set.Set("a", Scalar{V: 1})
	if v, ok := set.Get("a"); !ok || Export(v) != 1 {
		t.Fatalf("expected zero value store to accept Set, got %v", v)
	}

	var merged Store
	merged.Merge(Namespace{"rec": NewRecord("rec", map[string]any{"x": 1})})
	if v, ok := merged.Lookup("rec.x"); !ok || Export(v) != 1 {
		t.Fatalf("expected zero value store to accept Merge, got %v", v)
	}

	var empty Store
	empty.Delete("a")
	empty.Clear()
	if empty.Len() != 0 || len(empty.Names()) != 0 {
		t.Fatalf("expected empty store")
	}
}
