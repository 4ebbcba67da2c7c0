// Package assets fetches viewer assets from a local directory or an HTTP(S) base URL.
package assets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3/client"
	"go.uber.org/zap"

	"github.com/Faultbox/melonview/internal/logger"
)

// ErrStatus is wrapped by fetch errors caused by a non-2xx HTTP response.
var ErrStatus = errors.New("unexpected HTTP status")

// Fetcher resolves asset names against a base location and caches the bytes.
type Fetcher struct {
	base   string
	remote bool
	http   *client.Client
	cache  *Cache
}

// NewFetcher creates a fetcher for base, which is either a directory path or
// an http:// or https:// URL.
func NewFetcher(base string) *Fetcher {
	f := &Fetcher{
		base:   base,
		remote: IsRemote(base),
		cache:  NewCache(),
	}
	if f.remote {
		f.http = client.New()
	}
	return f
}

// IsRemote reports whether base points to an HTTP(S) server.
func IsRemote(base string) bool {
	lower := strings.ToLower(base)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Resolve returns the full location of name under the fetcher's base.
func (f *Fetcher) Resolve(name string) string {
	if !f.remote {
		return filepath.Join(f.base, filepath.FromSlash(name))
	}
	u, err := url.JoinPath(f.base, name)
	if err != nil {
		return strings.TrimRight(f.base, "/") + "/" + strings.TrimLeft(name, "/")
	}
	return u
}

// Fetch returns the bytes of name, reading from the cache when possible.
func (f *Fetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	loc := f.Resolve(name)
	if data, ok := f.cache.Get(loc); ok {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	if f.remote {
		data, err = f.get(ctx, loc)
	} else {
		data, err = os.ReadFile(loc)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", loc, err)
	}

	logger.Debug("asset fetched", zap.String("url", loc), zap.Int("bytes", len(data)))
	f.cache.Set(loc, data)
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, u string) ([]byte, error) {
	resp, err := f.http.R().SetContext(ctx).Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, code)
	}

	// The response body is pooled and reused after Close
	body := resp.Body()
	data := make([]byte, len(body))
	copy(data, body)
	return data, nil
}

// CacheStats returns cache hits and misses.
func (f *Fetcher) CacheStats() (hits, misses int) {
	return f.cache.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
