package imaging

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/zoolt/imagemanip/internal/manip"
)

// DefaultInfoCacheSize is the number of entries kept when no size is given.
const DefaultInfoCacheSize = 256

// InfoCache remembers the header information of source files so repeated
// dimension lookups avoid re-reading them.
//
// Only the image header is read (via image.DecodeConfig); pixel data is
// never cached. Entries are keyed by path, modification time and size, so a
// file rewritten in place is read again on the next lookup. The least
// recently used entry is evicted once the cache is full.
//
// InfoCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewInfoCache(128)
//	info, err := cache.Info("/path/to/image.jpg")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.Width, info.Height)
type InfoCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewInfoCache creates a cache holding up to size entries. A size <= 0
// selects DefaultInfoCacheSize.
func NewInfoCache(size int) *InfoCache {
	if size <= 0 {
		size = DefaultInfoCacheSize
	}
	return &InfoCache{cache: lru.New(size)}
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoded format: "jpeg", "png", "gif", "bmp", "webp" or
	// "tiff".
	Format Format `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Info returns the header information of the image at path.
//
// # Errors
//
//   - A FileNotFoundError reporting Missing if the file does not exist
//   - A FileNotFoundError with an invalid type if the header cannot be parsed
func (c *InfoCache) Info(path string) (ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ImageInfo{}, manip.NonExisting(path)
		}
		return ImageInfo{}, manip.InvalidType(path, err)
	}
	key := fmt.Sprintf("%s@%d:%d", path, stat.ModTime().UnixNano(), stat.Size())

	c.mu.Lock()
	if v, ok := c.cache.Get(key); ok {
		c.mu.Unlock()
		return v.(ImageInfo), nil
	}
	c.mu.Unlock()

	info, err := readInfo(path)
	if err != nil {
		return ImageInfo{}, err
	}
	info.FileSizeBytes = stat.Size()

	c.mu.Lock()
	c.cache.Add(key, info)
	c.mu.Unlock()

	return info, nil
}

// Len returns the number of cached entries.
func (c *InfoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// Clear removes all entries.
func (c *InfoCache) Clear() {
	c.mu.Lock()
	c.cache.Clear()
	c.mu.Unlock()
}

func readInfo(path string) (ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, manip.InvalidType(path, err)
	}
	defer f.Close()

	cfg, name, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, manip.InvalidType(path, err)
	}

	return ImageInfo{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: Format(name),
	}, nil
}
