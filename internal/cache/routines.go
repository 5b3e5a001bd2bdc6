package cache

import (
	"hash/maphash"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/shapejson/internal/plan"
	"github.com/hupe1980/shapejson/internal/shape"
)

const numShards = 64

// Key identifies one compiled routine.
type Key struct {
	Type   reflect.Type
	Config shape.Config
}

// Observer is notified of cache traffic. Implementations must be safe for
// concurrent use and must not call back into the cache.
type Observer interface {
	Hit(key Key)
	Miss(key Key)
	Built(key Key, elapsed time.Duration, err error)
}

type shard struct {
	mu sync.RWMutex
	m  map[Key]*plan.Routine
}

// Routines is a concurrent map from (type, Config) to compiled routine.
// Entries are created on first demand and never evicted; concurrent first
// uses of one key share a single build. Failed builds are not stored, so a
// later call retries after the type or registry changed.
type Routines struct {
	shards [numShards]shard
	seed   maphash.Seed
	flight singleflight.Group

	observer atomic.Pointer[Observer]

	hits     atomic.Int64
	misses   atomic.Int64
	builds   atomic.Int64
	failures atomic.Int64
}

// Default is the process-wide routine cache.
var Default = New()

// New creates an empty cache.
func New() *Routines {
	r := &Routines{seed: maphash.MakeSeed()}
	for i := range r.shards {
		r.shards[i].m = make(map[Key]*plan.Routine)
	}
	return r
}

// SetObserver installs o; nil removes the observer.
func (r *Routines) SetObserver(o Observer) {
	if o == nil {
		r.observer.Store(nil)
		return
	}
	r.observer.Store(&o)
}

func (r *Routines) shard(k Key) *shard {
	return &r.shards[maphash.Comparable(r.seed, k)%numShards]
}

// Get returns the routine for t under cfg, building it on first use.
func (r *Routines) Get(t reflect.Type, cfg shape.Config) (*plan.Routine, error) {
	k := Key{Type: t, Config: cfg}
	s := r.shard(k)

	if rt, ok := s.load(k); ok {
		r.hits.Add(1)
		if o := r.observer.Load(); o != nil {
			(*o).Hit(k)
		}
		return rt, nil
	}
	r.misses.Add(1)
	if o := r.observer.Load(); o != nil {
		(*o).Miss(k)
	}

	v, err, _ := r.flight.Do(flightKey(k), func() (any, error) {
		// a flight that finished between load and Do already stored it
		if rt, ok := s.load(k); ok {
			return rt, nil
		}
		start := time.Now()
		rt, err := plan.Build(t, cfg, r.Get)
		if o := r.observer.Load(); o != nil {
			(*o).Built(k, time.Since(start), err)
		}
		if err != nil {
			r.failures.Add(1)
			return nil, err
		}
		r.builds.Add(1)
		s.mu.Lock()
		s.m[k] = rt
		s.mu.Unlock()
		return rt, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*plan.Routine), nil
}

func (s *shard) load(k Key) (*plan.Routine, bool) {
	s.mu.RLock()
	rt, ok := s.m[k]
	s.mu.RUnlock()
	return rt, ok
}

// flightKey renders k for singleflight. Type descriptors are unique per
// process, so their address identifies the type.
func flightKey(k Key) string {
	var id uintptr
	if k.Type != nil {
		id = reflect.ValueOf(k.Type).Pointer()
	}
	return strconv.FormatUint(uint64(id), 16) + "/" + k.Config.Key()
}

// Len returns the number of cached routines.
func (r *Routines) Len() int {
	n := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		n += len(s.m)
		s.mu.RUnlock()
	}
	return n
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits     int64
	Misses   int64
	Builds   int64
	Failures int64
	Routines int
}

// Stats returns the current counters.
func (r *Routines) Stats() Stats {
	return Stats{
		Hits:     r.hits.Load(),
		Misses:   r.misses.Load(),
		Builds:   r.builds.Load(),
		Failures: r.failures.Load(),
		Routines: r.Len(),
	}
}
