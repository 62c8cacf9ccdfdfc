package job

import "time"

// Lookup is the outcome of a cache read
type Lookup string

const (
	LookupHit   Lookup = "hit"
	LookupStale Lookup = "stale"
	LookupMiss  Lookup = "miss"
)

// Recorder receives search telemetry
type Recorder interface {
	CacheLookup(result Lookup)
	ProviderRequest(provider string, err error)
	SearchCompleted(source string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) CacheLookup(Lookup)                    {}
func (nopRecorder) ProviderRequest(string, error)         {}
func (nopRecorder) SearchCompleted(string, time.Duration) {}
