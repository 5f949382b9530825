package registration

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]Registrant
}

// NewMemoryRepository builds an in-memory registrant store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]Registrant)}
}

func (r *memoryRepository) Create(_ context.Context, reg Registrant) (Registrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[reg.Email]; exists {
		return Registrant{}, ErrDuplicateEmail
	}
	r.nextID++
	reg.ID = r.nextID
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	r.users[reg.Email] = reg
	return reg, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Registrant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	regs := make([]Registrant, 0, len(r.users))
	for _, reg := range r.users {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool {
		if !regs[i].CreatedAt.Equal(regs[j].CreatedAt) {
			return regs[i].CreatedAt.After(regs[j].CreatedAt)
		}
		return regs[i].ID > regs[j].ID
	})
	return regs, nil
}
