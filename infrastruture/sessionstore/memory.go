package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	dmn "github.com/beka-birhanu/vinom-robomaze/domain"
	"github.com/beka-birhanu/vinom-robomaze/service/i"
	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory. Records are stored encoded, like in Redis,
// so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]byte
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID][]byte)}
}

var _ i.SessionStore = &MemoryStore{}

// Save writes the session record.
func (s *MemoryStore) Save(_ context.Context, record dmn.SessionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", record.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[record.ID] = payload
	return nil
}

// ByID retrieves a session record.
func (s *MemoryStore) ByID(_ context.Context, id uuid.UUID) (dmn.SessionRecord, error) {
	var record dmn.SessionRecord

	s.mu.RLock()
	payload, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return record, i.ErrNotFound
	}

	if err := json.Unmarshal(payload, &record); err != nil {
		return record, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return record, nil
}

// Delete removes a session record.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
