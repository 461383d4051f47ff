package cache

import (
	"context"
	"fmt"
	"net/url"
)

// Open returns the cache named by rawURL:
//
//	""                  FileCache in dir
//	"none"              NullCache
//	"file:///some/dir"  FileCache in /some/dir
//	"redis://…"         RedisCache (also rediss://)
func Open(ctx context.Context, rawURL, dir string) (Cache, error) {
	switch rawURL {
	case "":
		if dir == "" {
			dir = DefaultDir()
		}
		return openFile(dir)
	case "none", "off":
		return NewNullCache(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}
	switch u.Scheme {
	case "file":
		return openFile(u.Path)
	case "redis", "rediss":
		c, err := NewRedisCache(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported cache scheme %q", u.Scheme)
	}
}

func openFile(dir string) (Cache, error) {
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}
