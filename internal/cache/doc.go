// Package cache holds compiled routines keyed by (type, Config).
//
// The cache is a 64-way sharded map: a key is hashed with maphash to pick a
// shard, and each shard guards its map with an RWMutex so that the hit path
// only takes a read lock. Misses are funneled through a singleflight group,
// which together with a second lookup inside the flight guarantees at most
// one plan.Build per key for the lifetime of the cache.
//
// Routines are never evicted. A process compiles one routine per distinct
// (type, Config) pair it actually uses, which is bounded by the program's
// types.
package cache
