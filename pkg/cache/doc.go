// Package cache provides a generic, thread-safe LRU cache.
//
// It backs per-language dictionary caching in pkg/i18n, but is not tied to it:
//
//	c := cache.New[string, i18n.Dictionary](8)
//	dict, err := c.GetOrLoad("de", func() (i18n.Dictionary, error) {
//		return source.Load(ctx, "de")
//	})
//
// Loaders run outside the cache lock, so a slow load never blocks readers of
// other keys. Two concurrent misses for the same key may both run the loader;
// the last value stored wins.
package cache
