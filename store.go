package figcon

// Store owns the merged options state. The zero value is an empty store. It
// performs no locking; callers that share a Store across goroutines must
// serialise access themselves.
type Store struct {
	state Namespace
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: Namespace{}}
}

// Get returns the value stored under name.
func (s *Store) Get(name string) (Value, bool) {
	value, ok := s.state[name]
	return value, ok
}

// Set stores value under name, replacing any previous value without merging.
func (s *Store) Set(name string, value Value) {
	s.ensure()
	s.state[name] = value
}

// Delete removes name. Deleting an absent name does nothing.
func (s *Store) Delete(name string) {
	delete(s.state, name)
}

// Clear empties the state.
func (s *Store) Clear() {
	clear(s.state)
}

// Merge folds ns into the state using Merge semantics.
func (s *Store) Merge(ns Namespace) {
	s.ensure()
	Merge(s.state, ns)
}

func (s *Store) ensure() {
	if s.state == nil {
		s.state = Namespace{}
	}
}

// Len reports the number of top level names.
func (s *Store) Len() int {
	return len(s.state)
}

// Names returns the top level names sorted alphabetically.
func (s *Store) Names() []string {
	return s.state.Names()
}

// Lookup resolves a dot separated path, descending through records.
func (s *Store) Lookup(path string) (Value, bool) {
	return lookupPath(s.state, path)
}

// Snapshot returns a deep copy of the state.
func (s *Store) Snapshot() Namespace {
	return s.state.Clone()
}
