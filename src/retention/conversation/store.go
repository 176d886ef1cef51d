// Package conversation persists chat turns on the customer document.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/retainworks/retainbot/src/retention/types"
	"github.com/retainworks/retainbot/src/store"
)

// Publisher is notified after a turn is durably appended, e.g. to feed a
// Redis stream for downstream consumers. Publish failures are logged, never
// surfaced to the chat flow.
type Publisher func(ctx context.Context, customerID string, turn types.Turn) error

// Store appends and reads ordered turns per customer, backed by the
// document store. Appends for the same customer are serialized with a
// per-key mutex so concurrent turns cannot lose the read-modify-write.
type Store struct {
	docs    store.Store
	publish Publisher

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(docs store.Store, publish Publisher) *Store {
	return &Store{docs: docs, publish: publish, locks: make(map[string]*sync.Mutex)}
}

func (s *Store) lockFor(customerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[customerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[customerID] = l
	}
	return l
}

// History returns the most recent limit turns, oldest first. A customer
// with no record yet yields an empty slice, not an error.
func (s *Store) History(ctx context.Context, customerID string, limit int) ([]types.Turn, error) {
	var cust types.CustomerRecord
	err := s.docs.Get(ctx, store.CustomersBucket, customerID, &cust)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("conversation: load %s: %w", customerID, err)
	}
	turns := cust.ConversationHistory
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns, nil
}

// Append stamps and stores a turn on the customer record, synthesizing an
// empty record when the customer is unknown.
func (s *Store) Append(ctx context.Context, customerID, role, content string) (types.Turn, error) {
	l := s.lockFor(customerID)
	l.Lock()
	defer l.Unlock()

	var cust types.CustomerRecord
	err := s.docs.Get(ctx, store.CustomersBucket, customerID, &cust)
	if errors.Is(err, store.ErrNotFound) {
		cust = types.CustomerRecord{CustomerID: customerID}
	} else if err != nil {
		return types.Turn{}, fmt.Errorf("conversation: load %s: %w", customerID, err)
	}

	turn := types.Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	cust.ConversationHistory = append(cust.ConversationHistory, turn)

	if err := s.docs.Upsert(ctx, store.CustomersBucket, customerID, &cust); err != nil {
		return types.Turn{}, fmt.Errorf("conversation: store %s: %w", customerID, err)
	}

	if s.publish != nil {
		if err := s.publish(ctx, customerID, turn); err != nil {
			log.Printf("conversation: publish turn for %s: %v", customerID, err)
		}
	}
	return turn, nil
}
