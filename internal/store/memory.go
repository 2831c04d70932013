package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rgehrsitz/ptregime/internal/domain"
)

// MemoryStore keeps simulations in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]domain.SavedSimulation
	byUser map[string][]string

	Now func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]domain.SavedSimulation),
		byUser: make(map[string][]string),
		Now:    time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, sim *domain.SavedSimulation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := prepare(sim, s.Now); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[sim.ID]; !exists {
		s.byUser[sim.UserID] = append(s.byUser[sim.UserID], sim.ID)
	}
	s.byID[sim.ID] = *sim
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (domain.SavedSimulation, error) {
	if err := ctx.Err(); err != nil {
		return domain.SavedSimulation{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sim, ok := s.byID[id]
	if !ok {
		return domain.SavedSimulation{}, ErrNotFound
	}
	return sim, nil
}

func (s *MemoryStore) List(ctx context.Context, userID string) ([]domain.SavedSimulation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	ids := s.byUser[userID]
	out := make([]domain.SavedSimulation, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
