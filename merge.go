package figcon

// Merge folds incoming into base in place. Names missing from base are added
// verbatim. For names present in both:
//   - an incoming Callable replaces the base value, even a record;
//   - two distinct records are merged field by field, recursively;
//   - anything else is replaced by the incoming value.
//
// Both groups are walked in name order. There is no depth limit and no cycle
// guard: a self-referencing record graph recurses without bound.
func Merge(base, incoming Namespace) {
	if base == nil || len(incoming) == 0 {
		return
	}

	var disjoint, overlap []string
	for _, name := range incoming.Names() {
		if _, exists := base[name]; exists {
			overlap = append(overlap, name)
			continue
		}
		disjoint = append(disjoint, name)
	}

	for _, name := range disjoint {
		base[name] = incoming[name]
	}

	for _, name := range overlap {
		current, next := base[name], incoming[name]
		if _, ok := next.(Callable); ok {
			base[name] = next
			continue
		}
		currentRecord, currentOK := current.(*Record)
		nextRecord, nextOK := next.(*Record)
		if currentOK && nextOK && currentRecord != nil && nextRecord != nil {
			if currentRecord != nextRecord {
				if currentRecord.Fields == nil {
					currentRecord.Fields = Namespace{}
				}
				Merge(currentRecord.Fields, nextRecord.Fields)
			}
			continue
		}
		base[name] = next
	}
}
