// Package cache provides the read-through contract cache. Redis backs it when
// configured; otherwise a no-op implementation keeps callers unaware.
package cache
