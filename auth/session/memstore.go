package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/google/uuid"
)

type (
	// Store keeps sessions between requests.
	//
	// Load returns (nil, nil) for unknown ids.
	Store interface {
		NewID() string
		Load(ctx context.Context, id string) (*Session, error)
		Save(ctx context.Context, id string, s *Session) error
		Destroy(ctx context.Context, id string) error
	}

	memStore struct {
		cache *bigcache.BigCache
	}
)

// InMemoryStore keeps sessions in process memory. Sessions are lost on
// restart and evicted an hour after their last save.
func InMemoryStore() (Store, error) {
	cfg := bigcache.DefaultConfig(2 * InactivityTimeout)
	cfg.CleanWindow = 5 * time.Minute
	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("session: unable to allocate session cache, cause %w", err)
	}
	return &memStore{
		cache: cache,
	}, nil
}

func (m *memStore) NewID() string {
	return uuid.NewString()
}

func (m *memStore) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	buf, err := m.cache.Get(id)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("session: unable to load %v, cause %w", id, err)
	}
	var s Session
	if err := json.Unmarshal(buf, &s); err != nil {
		return nil, fmt.Errorf("session: corrupted entry %v, cause %w", id, err)
	}
	return &s, nil
}

func (m *memStore) Save(ctx context.Context, id string, s *Session) error {
	buf, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: unable to encode %v, cause %w", id, err)
	}
	return m.cache.Set(id, buf)
}

func (m *memStore) Destroy(ctx context.Context, id string) error {
	err := m.cache.Delete(id)
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("session: unable to destroy %v, cause %w", id, err)
	}
	return nil
}
