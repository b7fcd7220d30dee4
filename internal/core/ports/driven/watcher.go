package driven

import "context"

// SchemaWatcher reports when any of a set of files changes on disk.
type SchemaWatcher interface {
	// Watch blocks until ctx is done, calling onChange with the path of
	// each changed file. Bursts of events for one file are coalesced.
	Watch(ctx context.Context, paths []string, onChange func(path string)) error
}
