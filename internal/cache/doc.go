// Package cache provides a generic bounded LRU cache.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Entries past capacity are evicted least recently used first, and an
// optional callback observes every eviction. Sweep removes entries matching
// a predicate, which the raster cache uses to drop entries that were not
// touched during a frame.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
