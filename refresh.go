package figcon

import (
	"time"

	"github.com/goliatone/go-figcon/pkg/activity"
	"github.com/google/uuid"
)

// RefreshOption overrides a location for one refresh. Overrides are kept for
// later refreshes when the refresh succeeds.
type RefreshOption func(*Locations)

// RefreshPrimary loads the primary tier from path.
func RefreshPrimary(path string) RefreshOption {
	return func(ls *Locations) {
		if path != "" {
			ls.Primary = path
		}
	}
}

// RefreshSecondary loads the secondary tier from path.
func RefreshSecondary(path string) RefreshOption {
	return func(ls *Locations) {
		if path != "" {
			ls.Secondary = path
		}
	}
}

type loadedSource struct {
	location Location
	path     string
	source   string
	kinds    map[string]Kind
}

// Refresh rebuilds the options state: default, then secondary, then primary
// are loaded and merged in that fixed order so later tiers win. A loader
// error is returned as is and leaves the previous state and locations intact.
func (f *Figcon) Refresh(opts ...RefreshOption) error {
	locations := f.locations
	for _, opt := range opts {
		if opt != nil {
			opt(&locations)
		}
	}

	ordered := locations.Ordered()
	namespaces := make([]Namespace, 0, len(ordered))
	sources := make([]loadedSource, 0, len(ordered))
	for _, location := range ordered {
		path := locations.Path(location)
		start := time.Now()
		src, err := f.loader.Load(path)
		f.logger.LogLoad(LoadEvent{
			Location: location,
			Path:     path,
			Source:   src.Path,
			Defined:  len(src.Namespace),
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			return err
		}
		namespaces = append(namespaces, src.Namespace)
		sources = append(sources, loadedSource{
			location: location,
			path:     path,
			source:   src.Path,
			kinds:    kindsOf(src.Namespace),
		})
	}

	f.store.Clear()
	for _, ns := range namespaces {
		f.store.Merge(ns)
	}

	f.locations = locations
	f.sources = sources
	f.snapshotID = uuid.NewString()
	clear(f.overridden)

	resolved := make(map[string]string, len(sources))
	for _, src := range sources {
		if src.source != "" {
			resolved[src.location.String()] = src.source
		}
	}
	f.emit(activity.BuildRefreshEvent(activity.RefreshEventInput{
		SnapshotID: f.snapshotID,
		Locations: map[string]string{
			LocationDefault.String():   locations.Default,
			LocationSecondary.String(): locations.Secondary,
			LocationPrimary.String():   locations.Primary,
		},
		Sources: resolved,
		Names:   f.store.Len(),
	}))
	return nil
}

func kindsOf(ns Namespace) map[string]Kind {
	kinds := make(map[string]Kind, len(ns))
	for name, value := range ns {
		if value == nil {
			kinds[name] = KindScalar
			continue
		}
		kinds[name] = value.Kind()
	}
	return kinds
}
