package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// cacheEntry is a decoded image together with the format name reported by
// its decoder.
type cacheEntry struct {
	img    image.Image
	format string
}

// ImageCache keeps decoded images keyed by file path so that repeated crop
// searches over the same file skip disk I/O and decoding.
//
// When maxEntries is positive the cache holds at most that many images and
// evicts the oldest one first. ImageCache is safe for concurrent use.
//
// Images are decoded with EXIF auto-orientation, so crop coordinates always
// refer to the image as it is displayed rather than as it is stored.
type ImageCache struct {
	mu         sync.RWMutex
	images     map[string]cacheEntry
	order      []string
	maxEntries int
}

// NewImageCache creates an empty cache. A maxEntries of 0 or less means the
// cache is unbounded.
func NewImageCache(maxEntries int) *ImageCache {
	return &ImageCache{
		images:     make(map[string]cacheEntry),
		maxEntries: maxEntries,
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
//
// Supported formats are PNG, JPEG, GIF, WebP, BMP and TIFF. The format is
// detected from the file contents, not the extension.
//
// Parameters:
//   - path: Path to the image file. Used verbatim as the cache key.
//
// Returns:
//   - image.Image: The decoded, EXIF-oriented image. Callers must not modify it.
//   - error: Non-nil if the file cannot be read or decoded.
//
// When the cache is full, loading a new path evicts the oldest entry.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to open image: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to decode image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have decoded the same file meanwhile.
	if e, ok := c.images[path]; ok {
		return e, nil
	}

	e := cacheEntry{img: img, format: format}
	c.images[path] = e
	c.order = append(c.order, path)
	for c.maxEntries > 0 && len(c.order) > c.maxEntries {
		delete(c.images, c.order[0])
		c.order = c.order[1:]
	}
	return e, nil
}

// Len reports the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cacheEntry)
	c.order = nil
	c.mu.Unlock()
}

// Evict drops the image cached for path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.images[path]; !ok {
		return
	}
	delete(c.images, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// ImageInfo describes a loaded image file.
type ImageInfo struct {
	// Width and Height are the oriented dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoder name: "png", "jpeg", "gif", "webp", "bmp" or "tiff".
	Format string `json:"format"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha is true when at least one pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// This function loads the image into the cache (if not already cached) and
// reports its oriented dimensions, decoder format, color depth, alpha
// presence and file size.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'd.
//
// # Alpha Detection
//
// HasAlpha is derived from the decoded image's Opaque method, so an RGBA PNG
// whose pixels are all fully opaque reports false.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	colorDepth := "8-bit"
	switch e.img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		colorDepth = "16-bit"
	}

	hasAlpha := false
	if o, ok := e.img.(interface{ Opaque() bool }); ok {
		hasAlpha = !o.Opaque()
	}

	bounds := e.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        e.format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult holds the oriented size of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads path into cache and returns its size.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
