package message

import (
	"errors"
	"time"
)

// ErrMessageNotFound is returned by repositories when no message matches
var ErrMessageNotFound = errors.New("message not found")

// Repository defines the interface for chat message persistence
type Repository interface {
	// GetMessage retrieves a message by ID
	GetMessage(messageID string) (*Message, error)

	// CreateMessage creates a new message
	CreateMessage(m *Message) error

	// DeleteMessage deletes a message
	DeleteMessage(messageID string) error

	// ListByWorkspace retrieves up to limit messages in a workspace created
	// strictly before the cursor, newest first. A zero cursor means "now".
	ListByWorkspace(workspaceID string, limit int, before time.Time) ([]*Message, error)

	// DeleteByWorkspace deletes all messages in a workspace
	DeleteByWorkspace(workspaceID string) error
}
