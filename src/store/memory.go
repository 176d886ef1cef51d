package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process Store used by tests and by STORE_BACKEND=memory
// for local development without MySQL.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte // bucket -> key -> JSON
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[string][]byte)}
}

func (s *Memory) Get(ctx context.Context, bucket, key string, out any) error {
	s.mu.RLock()
	body, ok := s.docs[bucket][key]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("store: decode %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *Memory) Upsert(ctx context.Context, bucket, key string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode %s/%s: %w", bucket, key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs[bucket] == nil {
		s.docs[bucket] = make(map[string][]byte)
	}
	s.docs[bucket][key] = body
	return nil
}

func (s *Memory) Query(ctx context.Context, bucket, field, value, excludeKey string, limit int) ([][]byte, error) {
	if limit <= 0 {
		limit = 10
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.docs[bucket]))
	for k := range s.docs[bucket] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out [][]byte
	for _, k := range keys {
		if k == excludeKey {
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal(s.docs[bucket][k], &doc); err != nil {
			continue
		}
		if fmt.Sprint(doc[field]) != value {
			continue
		}
		out = append(out, s.docs[bucket][k])
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
