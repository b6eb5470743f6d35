package store

import (
	"context"
	"sync"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

// MemoryStore keeps projects in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	owners map[string]string
	byID   map[string]domain.RenovationProject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		owners: make(map[string]string),
		byID:   make(map[string]domain.RenovationProject),
	}
}

func (s *MemoryStore) List(_ context.Context, ownerID string) ([]domain.RenovationProject, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.RenovationProject, 0)
	for id, owner := range s.owners {
		if owner == ownerID {
			out = append(out, s.byID[id].Clone())
		}
	}
	sortByLastModified(out)
	return out, nil
}

func (s *MemoryStore) Upsert(_ context.Context, ownerID string, p domain.RenovationProject) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.owners[p.ID]; ok && owner != ownerID {
		return ErrNotOwner
	}
	s.owners[p.ID] = ownerID
	s.byID[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, ownerID, projectID string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.owners[projectID]; !ok || owner != ownerID {
		return nil
	}
	delete(s.owners, projectID)
	delete(s.byID, projectID)
	return nil
}
