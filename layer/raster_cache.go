package layer

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/internal/cache"
)

// Raster cache defaults.
const (
	// DefaultAccessThreshold is the number of consecutive frames a display
	// list must be seen before it is rasterized.
	DefaultAccessThreshold = 3
	// DefaultCacheCapacity bounds the number of tracked display lists.
	DefaultCacheCapacity = 256
	// DefaultMaxTextureDimension is the largest cached image edge in pixels.
	DefaultMaxTextureDimension = 4096

	bytesPerPixel = 4
)

// CacheKey identifies a cached rasterization: a display list drawn with a
// transform whose translation has been removed.
type CacheKey struct {
	ID     uint64
	Matrix displaylist.Matrix
}

// CachedImage describes an offscreen texture holding a rasterized display
// list.
type CachedImage struct {
	Key    CacheKey
	Extent gputypes.Extent3D
	Format gputypes.TextureFormat
	// Bounds is the pixel-aligned area the texture covers, in the key's
	// translation-free device space.
	Bounds displaylist.Rect
}

// ByteSize returns the texture memory used by the image.
func (img *CachedImage) ByteSize() int64 {
	return int64(img.Extent.Width) * int64(img.Extent.Height) * bytesPerPixel
}

// RasterizeFunc renders dl through m into img.
type RasterizeFunc func(dl *displaylist.DisplayList, m displaylist.Matrix, img *CachedImage) error

// RasterCacheOption configures a RasterCache.
type RasterCacheOption func(*rasterCacheOptions)

type rasterCacheOptions struct {
	threshold  int
	capacity   int
	maxDim     uint32
	format     gputypes.TextureFormat
	rasterizer RasterizeFunc
}

// WithAccessThreshold sets how many consecutive frames a display list must
// be seen before it is rasterized. Values below 1 are treated as 1.
func WithAccessThreshold(n int) RasterCacheOption {
	return func(o *rasterCacheOptions) {
		o.threshold = max(n, 1)
	}
}

// WithCacheCapacity limits the number of tracked display lists.
func WithCacheCapacity(n int) RasterCacheOption {
	return func(o *rasterCacheOptions) {
		o.capacity = n
	}
}

// WithMaxTextureDimension sets the largest image edge the cache accepts.
func WithMaxTextureDimension(px uint32) RasterCacheOption {
	return func(o *rasterCacheOptions) {
		o.maxDim = px
	}
}

// WithTextureFormat sets the format of cached images.
func WithTextureFormat(f gputypes.TextureFormat) RasterCacheOption {
	return func(o *rasterCacheOptions) {
		o.format = f
	}
}

// WithRasterizer installs the function that renders admitted display lists.
// Without one, admission only allocates the image description.
func WithRasterizer(fn RasterizeFunc) RasterCacheOption {
	return func(o *rasterCacheOptions) {
		o.rasterizer = fn
	}
}

type cacheEntry struct {
	accesses int
	seen     uint64
	image    *CachedImage
}

// RasterCacheStats is a snapshot of raster cache counters.
type RasterCacheStats struct {
	Entries   int
	Images    int
	Bytes     int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// RasterCache decides which display lists are worth rendering offscreen
// and reusing across frames. A list is admitted once it has been prerolled
// in DefaultAccessThreshold consecutive frames; entries not seen during a
// frame are dropped by EndFrame.
//
// RasterCache is safe for concurrent use.
type RasterCache struct {
	opts    rasterCacheOptions
	entries *cache.Cache[CacheKey, *cacheEntry]

	mu     sync.Mutex
	frame  uint64
	hits   uint64
	misses uint64
}

// NewRasterCache creates an empty raster cache.
func NewRasterCache(opts ...RasterCacheOption) *RasterCache {
	o := rasterCacheOptions{
		threshold: DefaultAccessThreshold,
		capacity:  DefaultCacheCapacity,
		maxDim:    DefaultMaxTextureDimension,
		format:    gputypes.TextureFormatRGBA8Unorm,
	}
	for _, opt := range opts {
		opt(&o)
	}
	c := &RasterCache{
		opts:    o,
		entries: cache.New[CacheKey, *cacheEntry](o.capacity),
		frame:   1,
	}
	c.entries.OnEvict(func(k CacheKey, e *cacheEntry) {
		if e.image != nil {
			displaylist.Logger().Debug("layer: raster cache evicted image",
				"id", k.ID, "bytes", e.image.ByteSize())
		}
	})
	return c
}

// keyFor strips the translation from m so that scrolled content keeps its
// entry. Perspective matrices are kept whole.
func keyFor(dl *displaylist.DisplayList, m displaylist.Matrix) CacheKey {
	if !m.HasPerspective() {
		m[3], m[7] = 0, 0
	}
	return CacheKey{ID: dl.ID(), Matrix: m}
}

// Touch records that dl is drawn through m in the current frame. The
// first touch per frame counts as an access; reaching the threshold
// rasterizes the list if it is cacheable.
func (c *RasterCache) Touch(dl *displaylist.DisplayList, m displaylist.Matrix) {
	key := keyFor(dl, m)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(key)
	if !ok {
		e = &cacheEntry{}
		c.entries.Set(key, e)
	}
	if e.seen == c.frame {
		return
	}
	e.seen = c.frame
	e.accesses++
	if e.image != nil || e.accesses < c.opts.threshold {
		return
	}
	img, ok := c.admit(dl, key)
	if !ok {
		return
	}
	if c.opts.rasterizer != nil {
		if err := c.opts.rasterizer(dl, key.Matrix, img); err != nil {
			displaylist.Logger().Warn("layer: rasterize failed", "id", key.ID, "err", err)
			return
		}
	}
	e.image = img
	displaylist.Logger().Debug("layer: raster cache admitted",
		"id", key.ID, "width", img.Extent.Width, "height", img.Extent.Height)
}

// admit returns the image description for dl, or false when the list
// cannot be cached: unbounded, empty, perspective or oversized.
func (c *RasterCache) admit(dl *displaylist.DisplayList, key CacheKey) (*CachedImage, bool) {
	if dl.IsUnbounded() || key.Matrix.HasPerspective() {
		return nil, false
	}
	dev, ok := key.Matrix.MapRect(dl.Bounds())
	if !ok || dev.IsEmpty() {
		return nil, false
	}
	dev = dev.RoundOut()
	w, h := dev.Width(), dev.Height()
	if w > float64(c.opts.maxDim) || h > float64(c.opts.maxDim) || math.IsNaN(w+h) {
		return nil, false
	}
	return &CachedImage{
		Key:    key,
		Extent: gputypes.NewExtent2D(uint32(w), uint32(h)),
		Format: c.opts.format,
		Bounds: dev,
	}, true
}

// Lookup returns the cached image for dl drawn through m, if one has been
// admitted.
func (c *RasterCache) Lookup(dl *displaylist.DisplayList, m displaylist.Matrix) (*CachedImage, bool) {
	key := keyFor(dl, m)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries.Peek(key); ok && e.image != nil {
		c.hits++
		return e.image, true
	}
	c.misses++
	return nil, false
}

// EndFrame drops every entry that was not touched during the frame and
// starts the next one. It returns the number of dropped entries.
func (c *RasterCache) EndFrame() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	frame := c.frame
	n := c.entries.Sweep(func(_ CacheKey, e *cacheEntry) bool {
		return e.seen != frame
	})
	c.frame++
	return n
}

// Clear drops all entries.
func (c *RasterCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Sweep(func(CacheKey, *cacheEntry) bool { return true })
}

// Stats returns a snapshot of the cache counters.
func (c *RasterCache) Stats() RasterCacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := RasterCacheStats{Hits: c.hits, Misses: c.misses}
	cs := c.entries.Stats()
	s.Entries = cs.Len
	s.Evictions = cs.Evictions
	c.entries.Each(func(_ CacheKey, e *cacheEntry) {
		if e.image != nil {
			s.Images++
			s.Bytes += e.image.ByteSize()
		}
	})
	return s
}

// String implements fmt.Stringer.
func (s RasterCacheStats) String() string {
	return fmt.Sprintf("entries=%d images=%d bytes=%d hits=%d misses=%d evictions=%d",
		s.Entries, s.Images, s.Bytes, s.Hits, s.Misses, s.Evictions)
}
