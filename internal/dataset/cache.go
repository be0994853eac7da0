package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// identity is what a load is memoized on: the resolved path plus the size
// and modification time observed before reading.
type identity struct {
	path    string
	size    int64
	modTime time.Time
	opt     Options
}

func (id identity) key() string {
	return fmt.Sprintf("%s|%d|%d|%d|%s", id.path, id.size, id.modTime.UnixNano(), id.opt.Delimiter, id.opt.Sheet)
}

// Cache memoizes loads per source identity so repeated renders in a session
// do not re-read the file. A file that changes on disk gets a new identity.
// Concurrent loads of the same identity share one read.
type Cache struct {
	mu     sync.Mutex
	items  map[identity]*Dataset
	loads  int
	group  singleflight.Group
	logger *zap.Logger
}

// NewCache returns an empty cache. A nil logger disables logging.
func NewCache(logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{items: make(map[identity]*Dataset), logger: logger}
}

// Load returns the cached dataset for path or reads it through Load.
// Failed loads are not cached.
func (c *Cache) Load(path string, opt Options) (*Dataset, error) {
	id, err := identify(path, opt)
	if err != nil {
		return nil, err
	}
	if ds, ok := c.lookup(id); ok {
		c.logger.Debug("dataset cache hit", zap.String("path", id.path))
		return ds, nil
	}
	v, err, _ := c.group.Do(id.key(), func() (any, error) {
		if ds, ok := c.lookup(id); ok {
			return ds, nil
		}
		start := time.Now()
		ds, err := Load(path, opt)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.items[id] = ds
		c.loads++
		c.mu.Unlock()
		c.logger.Info("dataset loaded",
			zap.String("path", id.path),
			zap.Int("columns", len(ds.Header)),
			zap.Int("records", len(ds.Records)),
			zap.Duration("elapsed", time.Since(start)))
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

func (c *Cache) lookup(id identity) (*Dataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ds, ok := c.items[id]
	return ds, ok
}

// Loads reports how many times the cache went to the source.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

func identify(path string, opt Options) (identity, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return identity{}, sourceErr(path, "resolve path", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return identity{}, sourceErr(path, "stat", err)
	}
	if fi.IsDir() {
		return identity{}, sourceErr(path, "stat", fmt.Errorf("%s is a directory", abs))
	}
	return identity{path: abs, size: fi.Size(), modTime: fi.ModTime(), opt: opt}, nil
}
