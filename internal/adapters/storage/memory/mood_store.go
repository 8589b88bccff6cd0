// Package memory holds in-memory store implementations. They are NOT
// persistent and are only suitable for development / local mode and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

// MoodStore is a simple in-memory implementation of domain.MoodStore.
type MoodStore struct {
	mu      sync.RWMutex
	entries map[string][]*domain.MoodEntry
}

func NewMoodStore() *MoodStore {
	return &MoodStore{
		entries: make(map[string][]*domain.MoodEntry),
	}
}

func (s *MoodStore) Append(ctx context.Context, entry *domain.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.UserKey] = append(s.entries[entry.UserKey], entry)
	return nil
}

// ListRecent returns up to limit entries for a user, newest first, matching
// the descending range query of the real store.
func (s *MoodStore) ListRecent(ctx context.Context, userKey string, limit int) ([]*domain.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.entries[userKey]
	out := make([]*domain.MoodEntry, len(all))
	copy(out, all)

	sort.Slice(out, func(i, j int) bool { return out[i].SortKey > out[j].SortKey })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MoodStore) ListUserKeys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key, entries := range s.entries {
		if len(entries) == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
