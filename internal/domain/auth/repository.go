package auth

import "errors"

// ErrUserNotFound is returned by repositories when no user matches
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when a unique constraint (google id, email) is violated
var ErrUserExists = errors.New("user already exists")

// Repository defines the interface for user persistence
type Repository interface {
	// GetUser retrieves a user by internal ID
	GetUser(userID string) (*User, error)

	// GetUserByGoogleID retrieves a user by their identity provider subject ID
	GetUserByGoogleID(googleID string) (*User, error)

	// GetUserByEmail retrieves a user by their email
	GetUserByEmail(email string) (*User, error)

	// CreateUser creates a new user
	CreateUser(user *User) error

	// UpdateUser updates an existing user
	UpdateUser(user *User) error

	// DeleteUser deletes a user
	DeleteUser(userID string) error

	// ListUsersByIDs retrieves the users whose IDs are in ids, skipping unknown IDs
	ListUsersByIDs(ids []string) ([]*User, error)
}
