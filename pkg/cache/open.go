package cache

import (
	"context"
	"strings"
)

// Open returns the cache selected by url:
//
//   - "redis://..." or "rediss://...": a [RedisCache]
//   - "none" or "off": a [NullCache]
//   - anything else: a [FileCache] in dir
func Open(ctx context.Context, url, dir string) (Cache, error) {
	switch {
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		c, err := NewRedisCache(ctx, url)
		if err != nil {
			return nil, err
		}
		return c, nil
	case url == "none", url == "off":
		return NewNullCache(), nil
	}
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}
