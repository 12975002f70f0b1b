package users

import (
	"context"
	"fmt"
	"sync"

	"maintenance-gate/internal/models"
)

// MemoryStore keeps users in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	nextID uint
	users  map[string]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.User)}
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return fmt.Errorf("user %q already exists", user.Username)
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.Username] = *user
	return nil
}
