package memory

import (
	"sync"

	"notehive/internal/domain/auth"
)

// UserRepository is an in-memory implementation of the auth repository
type UserRepository struct {
	mu         sync.RWMutex
	users      map[string]*auth.User // userID -> User
	byGoogleID map[string]*auth.User // provider subject -> User
	byEmail    map[string]*auth.User // email -> User
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:      make(map[string]*auth.User),
		byGoogleID: make(map[string]*auth.User),
		byEmail:    make(map[string]*auth.User),
	}
}

// GetUser retrieves a user by ID
func (r *UserRepository) GetUser(id string) (*auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

// GetUserByGoogleID retrieves a user by their identity provider subject ID
func (r *UserRepository) GetUserByGoogleID(googleID string) (*auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.byGoogleID[googleID]
	if !exists {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.byEmail[email]
	if !exists {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return auth.ErrUserExists
	}
	if _, exists := r.byGoogleID[user.GoogleID]; exists {
		return auth.ErrUserExists
	}

	r.users[user.ID] = user
	r.byGoogleID[user.GoogleID] = user
	r.byEmail[user.Email] = user
	return nil
}

// UpdateUser updates an existing user
func (r *UserRepository) UpdateUser(user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, exists := r.users[user.ID]
	if !exists {
		return auth.ErrUserNotFound
	}

	if old.Email != user.Email {
		delete(r.byEmail, old.Email)
		r.byEmail[user.Email] = user
	}

	r.users[user.ID] = user
	r.byGoogleID[user.GoogleID] = user
	return nil
}

// DeleteUser deletes a user
func (r *UserRepository) DeleteUser(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return auth.ErrUserNotFound
	}

	delete(r.users, id)
	delete(r.byGoogleID, user.GoogleID)
	delete(r.byEmail, user.Email)
	return nil
}

// ListUsersByIDs retrieves the users matching the given IDs, skipping unknown ones
func (r *UserRepository) ListUsersByIDs(ids []string) ([]*auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*auth.User, 0, len(ids))
	for _, id := range ids {
		if user, exists := r.users[id]; exists {
			out = append(out, user)
		}
	}
	return out, nil
}
