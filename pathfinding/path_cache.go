package pathfinding

import (
	"fmt"
	"sync"
	"sync/atomic"

	"gridpath/core"
	"gridpath/gridmap"
)

// PathCacheKey identifies one search. Maps are immutable, so the map pointer
// is enough to identify the obstacles.
type PathCacheKey struct {
	Map        *gridmap.Map
	Start, End core.Point
}

// PathCache stores previously computed results for reuse. The oldest entry
// is evicted first once the cache is full.
type PathCache struct {
	mu        sync.RWMutex
	cache     map[PathCacheKey]Result
	order     []PathCacheKey
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewPathCache creates a new path cache with the specified maximum size.
// A size of zero or less means unbounded.
func NewPathCache(maxSize int) *PathCache {
	return &PathCache{
		cache:   make(map[PathCacheKey]Result),
		maxSize: maxSize,
	}
}

// Get retrieves a result from the cache if it exists.
func (pc *PathCache) Get(m *gridmap.Map, start, end core.Point) (Result, bool) {
	key := PathCacheKey{Map: m, Start: start, End: end}

	pc.mu.RLock()
	res, found := pc.cache[key]
	pc.mu.RUnlock()

	if found {
		atomic.AddInt64(&pc.hits, 1)
	} else {
		atomic.AddInt64(&pc.misses, 1)
	}
	return res, found
}

// Put stores a result in the cache.
func (pc *PathCache) Put(m *gridmap.Map, start, end core.Point, res Result) {
	key := PathCacheKey{Map: m, Start: start, End: end}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if _, ok := pc.cache[key]; ok {
		pc.cache[key] = res
		return
	}
	if pc.maxSize > 0 && len(pc.cache) >= pc.maxSize {
		oldest := pc.order[0]
		pc.order = pc.order[1:]
		delete(pc.cache, oldest)
		atomic.AddInt64(&pc.evictions, 1)
	}
	pc.cache[key] = res
	pc.order = append(pc.order, key)
}

// Clear removes all entries from the cache.
func (pc *PathCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache = make(map[PathCacheKey]Result)
	pc.order = nil
	atomic.StoreInt64(&pc.hits, 0)
	atomic.StoreInt64(&pc.misses, 0)
	atomic.StoreInt64(&pc.evictions, 0)
}

// Stats returns cache statistics.
func (pc *PathCache) Stats() (hits, misses, evictions, size int) {
	pc.mu.RLock()
	size = len(pc.cache)
	pc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&pc.hits))
	misses = int(atomic.LoadInt64(&pc.misses))
	evictions = int(atomic.LoadInt64(&pc.evictions))
	return hits, misses, evictions, size
}

// String returns a string representation of cache statistics.
func (pc *PathCache) String() string {
	hits, misses, evictions, size := pc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("PathCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, pc.maxSize, hits, misses, hitRate, evictions)
}

// CachedFinder wraps a Finder with a result cache. Cached results share
// their slices; callers must not modify them.
type CachedFinder struct {
	finder *Finder
	cache  *PathCache
}

// NewCachedFinder creates a cached finder holding up to cacheSize results.
func NewCachedFinder(finder *Finder, cacheSize int) *CachedFinder {
	return &CachedFinder{
		finder: finder,
		cache:  NewPathCache(cacheSize),
	}
}

// FindPath returns the cached result for this map and endpoints, running the
// search on a miss. Errors are not cached.
func (cf *CachedFinder) FindPath(m *gridmap.Map, start, goal core.Point) (Result, error) {
	if res, ok := cf.cache.Get(m, start, goal); ok {
		return res, nil
	}
	res, err := cf.finder.FindPath(m, start, goal)
	if err != nil {
		return res, err
	}
	cf.cache.Put(m, start, goal, res)
	return res, nil
}

// Costs returns the wrapped finder's cost model.
func (cf *CachedFinder) Costs() Costs { return cf.finder.Costs() }

// Connectivity returns the wrapped finder's connectivity.
func (cf *CachedFinder) Connectivity() Connectivity { return cf.finder.Connectivity() }

// ClearCache clears the path cache.
func (cf *CachedFinder) ClearCache() {
	cf.cache.Clear()
}

// CacheStats returns the cache statistics.
func (cf *CachedFinder) CacheStats() string {
	return cf.cache.String()
}
