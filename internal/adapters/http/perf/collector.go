// Package perf keeps a ring of recent request and query timings behind
// the camp API, feeding the slow-request log and the admin snapshot.
package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize holds roughly a day of camp-season traffic.
const DefaultRingSize = 4096

// SampleKind distinguishes HTTP requests from SQLite statements.
type SampleKind uint8

const (
	KindRequest SampleKind = iota
	KindQuery
)

// Sample is one timed unit of work: a routed request ("POST
// /api/assignments") or a statement ("QueryContext").
type Sample struct {
	Kind       SampleKind
	Path       string
	StatusCode int // HTTP status, 0 for statements
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-capacity ring of samples. Record never blocks
// on aggregation; when the ring is full the oldest sample goes first.
type Collector struct {
	mu    sync.Mutex
	ring  []Sample
	cap   int
	head  int
	total int64 // samples ever recorded, read atomically
}

// NewCollector creates a collector holding at most size samples.
// PRE: size > 0, otherwise DefaultRingSize is used
// POST: Returns a collector with pre-allocated storage
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{
		ring: make([]Sample, size),
		cap:  size,
	}
}

// Record stores a sample, overwriting the oldest when the ring is full.
// The lock covers one index bump and a struct copy.
func (c *Collector) Record(s Sample) {
	c.mu.Lock()
	c.ring[c.head] = s
	c.head = (c.head + 1) % c.cap
	c.mu.Unlock()
	atomic.AddInt64(&c.total, 1)
}

// TotalRecorded returns how many samples were ever recorded, including
// those already pushed out of the ring.
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.total)
}

// Snapshot holds aggregates computed on read.
type Snapshot struct {
	TotalSamples   int64
	RequestP50Ms   float64
	RequestP95Ms   float64
	RequestP99Ms   float64
	SlowestRoutes  []Stat
	SlowestQueries []Stat
}

// Stat aggregates timings for one route or statement.
type Stat struct {
	Path    string
	AvgMs   float64
	MaxMs   float64
	Count   int
	TotalMs float64
}

func (s *Stat) observe(ms float64) {
	s.Count++
	s.TotalMs += ms
	if ms > s.MaxMs {
		s.MaxMs = ms
	}
}

// Snapshot aggregates the ring into percentiles and top-N lists. The
// sort makes it too expensive for anything but an admin page load.
// PRE: none
// POST: Returns aggregates over samples recorded at or after since
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Sample, c.cap)
	copy(buf, c.ring)
	c.mu.Unlock()

	var requestDurations []float64
	routes := make(map[string]*Stat)
	queries := make(map[string]*Stat)

	for _, s := range buf {
		if s.Timestamp.IsZero() || s.Timestamp.Before(since) {
			continue
		}
		byPath := queries
		if s.Kind == KindRequest {
			byPath = routes
			requestDurations = append(requestDurations, s.DurationMs)
		}
		stat, ok := byPath[s.Path]
		if !ok {
			stat = &Stat{Path: s.Path}
			byPath[s.Path] = stat
		}
		stat.observe(s.DurationMs)
	}

	snap := Snapshot{
		TotalSamples:   c.TotalRecorded(),
		SlowestRoutes:  slowestFirst(routes, topN),
		SlowestQueries: slowestFirst(queries, topN),
	}
	if len(requestDurations) > 0 {
		sort.Float64s(requestDurations)
		snap.RequestP50Ms = percentile(requestDurations, 50)
		snap.RequestP95Ms = percentile(requestDurations, 95)
		snap.RequestP99Ms = percentile(requestDurations, 99)
	}
	return snap
}

// percentile interpolates the p-th percentile from a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// slowestFirst ranks stats by average duration, keeping the top n and
// computing the averages along the way.
func slowestFirst(stats map[string]*Stat, n int) []Stat {
	list := make([]Stat, 0, len(stats))
	for _, s := range stats {
		s.AvgMs = s.TotalMs / float64(s.Count)
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].AvgMs > list[j].AvgMs
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
