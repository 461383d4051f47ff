// Package cache provides the artifact cache behind bleed's renderers.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory,
//     used by the CLI
//   - [RedisCache]: shared cache for several `bleed serve` instances
//   - [NullCache]: caching disabled
//
// [Open] picks a backend from a URL, as the --cache-url flag does:
//
//	c, err := cache.Open(ctx, "redis://localhost:6379/0", "")
//	c, err := cache.Open(ctx, "", cache.DefaultDir())   // file cache
//	c, err := cache.Open(ctx, "none", "")               // disabled
//
// # Keys
//
// A painting is fully determined by its seed and configuration, so rendered
// artifacts are cached under a hash of both. [Keyer] builds those keys;
// [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts identifies one rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Seed   uint64  `json:"seed"`
	Scale  float64 `json:"scale,omitempty"`
	Config any     `json:"config,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(opts ArtifactKeyOpts) string
}

// keyVersion changes whenever rendering output changes for the same input.
const keyVersion = "v1"

// DefaultKeyer hashes the canonical JSON form of the options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, opts)
}

// DefaultDir returns the CLI cache directory, $XDG_CACHE_HOME/bleed or the
// platform equivalent.
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "bleed")
	}
	return filepath.Join(os.TempDir(), "bleed-cache")
}
