// Package ristretto adapts dgraph-io/ristretto as a cost-bounded snapshot
// store. Note that ristretto admits writes asynchronously: a Get immediately
// after Set may miss, which for snapshots only means one extra re-read of
// the backing file.
package ristretto

import (
	"errors"

	rc "github.com/dgraph-io/ristretto"
	"github.com/unkn0wn-root/statefile/snapstore"
)

type Store struct {
	c *rc.Cache
}

var _ snapstore.Store = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		s.c.Del(key)
		return nil, false
	}
	return b, true
}

func (s *Store) Set(key string, value []byte, cost int64) bool {
	return s.c.Set(key, value, cost)
}

func (s *Store) Del(key string) {
	s.c.Del(key)
}

func (s *Store) Close() error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes ristretto's counters when Config.Metrics was set. Not part
// of the snapstore.Store interface.
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
