package flow

const (
	SourceNone    Source = iota // Nothing cached and no fetch was allowed (offline).
	SourceCache                 // Served from the local cache.
	SourceNetwork               // Fetched from the remote service and written through.
)

// Source tells where a read was served from.
type Source int

var SourceTextMap = map[Source]string{
	SourceNone:    "none",
	SourceCache:   "cache",
	SourceNetwork: "network",
}

func (s Source) String() string { return SourceTextMap[s] }

// Result is the outcome of a cached read. Stale is only ever set for values served
// from an expired entry while offline.
type Result[T any] struct {
	Value  T
	Source Source
	Stale  bool
}

// Found reports whether Value holds data.
func (r Result[T]) Found() bool { return r.Source != SourceNone }
