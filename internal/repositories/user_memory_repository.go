package repositories

import (
	"fmt"
	"sync"
	"time"

	"contactbook/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users      map[string]models.User
	byUsername map[string]string
	mu         sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:      make(map[string]models.User),
		byUsername: make(map[string]string),
	}
}

// Create adds a new user, rejecting a username that is already present.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[user.Username]; ok {
		return fmt.Errorf("username %s: %w", user.Username, ErrDuplicateKey)
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	r.byUsername[user.Username] = user.ID
	return nil
}

// GetByUsername returns a user by username.
func (r *MemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
	}
	user := r.users[id]
	return &user, nil
}
