// Package bigcache adapts allegro/bigcache as a snapshot store. Entries
// expire after LifeWindow and the whole store can be capped by
// HardMaxCacheSizeMB; both kinds of loss just mean a re-read of the backing
// file on the next Get.
package bigcache

import (
	"time"

	bc "github.com/allegro/bigcache/v3"
	"github.com/unkn0wn-root/statefile/snapstore"
)

type Store struct {
	c *bc.BigCache
}

var _ snapstore.Store = (*Store)(nil)

type Config struct {
	// LifeWindow is the global entry lifetime (default 10m). BigCache has no
	// per-entry TTL.
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Store, error) {
	if cfg.LifeWindow <= 0 {
		cfg.LifeWindow = 10 * time.Minute
	}
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(key string) ([]byte, bool) {
	b, err := s.c.Get(key)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (s *Store) Set(key string, value []byte, _ int64) bool {
	return s.c.Set(key, value) == nil
}

func (s *Store) Del(key string) {
	s.c.Delete(key)
}

func (s *Store) Close() error {
	return s.c.Close()
}
