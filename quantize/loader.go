package quantize

import (
	"image"

	"github.com/swatchkit/swatchkit/cache"
)

// ImageCache caches decoded images by file path so repeated palette
// extractions skip disk reads and decoding. Unlike a plain map it is
// memory-bounded: the underlying EvictionCache estimates each image's
// byte size and evicts by recency once the budget is exceeded.
//
// ImageCache is safe for concurrent use. Different path strings for the
// same file (relative vs absolute) produce separate entries.
type ImageCache struct {
	store *cache.EvictionCache[image.Image]
}

// DefaultImageCacheBudget bounds a default ImageCache at 256 MB of
// decoded pixels.
const DefaultImageCacheBudget = 256 << 20

// NewImageCache creates an image cache with the given options. A zero
// MaxMemory gets the default 256 MB budget; decoded images are too large
// to cache unbounded.
func NewImageCache(opts cache.Options) *ImageCache {
	if opts.MaxMemory <= 0 {
		opts.MaxMemory = DefaultImageCacheBudget
	}
	return &ImageCache{store: cache.New[image.Image](opts)}
}

// Load returns the cached image for path, decoding and caching it on a
// miss.
func (c *ImageCache) Load(path string) (image.Image, error) {
	if img, ok := c.store.Get(path); ok {
		return img, nil
	}
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	// The only Set failure is a blank key, and Load was called with a
	// path that just opened successfully.
	_ = c.store.Set(path, img)
	return img, nil
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.store.Delete(path)
}

// Clear removes all cached images.
func (c *ImageCache) Clear() {
	c.store.Clear()
}

// Stats exposes the underlying cache accounting.
func (c *ImageCache) Stats() cache.Stats {
	return c.store.Stats()
}
