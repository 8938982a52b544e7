// Package cache provides a bounded, thread-safe LRU cache.
//
//	c := cache.New[font.GID, []font.Segment](512)
//	c.Put(gid, segs)
//	segs, ok := c.Get(gid)
//
// Get promotes the entry to most recently used. Put evicts the least
// recently used entry once the capacity is reached.
package cache
