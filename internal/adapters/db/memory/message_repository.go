package memory

import (
	"sort"
	"sync"
	"time"

	"notehive/internal/domain/message"
)

// MessageRepository is an in-memory implementation of the chat message repository
type MessageRepository struct {
	mu       sync.RWMutex
	messages map[string]*message.Message // messageID -> Message
}

// NewMessageRepository creates a new in-memory message repository
func NewMessageRepository() *MessageRepository {
	return &MessageRepository{messages: make(map[string]*message.Message)}
}

// GetMessage retrieves a message by ID
func (r *MessageRepository) GetMessage(id string) (*message.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msg, exists := r.messages[id]
	if !exists {
		return nil, message.ErrMessageNotFound
	}
	return msg, nil
}

// CreateMessage creates a new message
func (r *MessageRepository) CreateMessage(msg *message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[msg.ID] = msg
	return nil
}

// DeleteMessage deletes a message
func (r *MessageRepository) DeleteMessage(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.messages[id]; !exists {
		return message.ErrMessageNotFound
	}
	delete(r.messages, id)
	return nil
}

// ListByWorkspace retrieves up to limit of the workspace's messages created
// before the cursor, newest first. A zero cursor means no lower bound.
func (r *MessageRepository) ListByWorkspace(workspaceID string, limit int, before time.Time) ([]*message.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*message.Message, 0)
	for _, msg := range r.messages {
		if msg.WorkspaceID != workspaceID {
			continue
		}
		if !before.IsZero() && !msg.CreatedAt.Before(before) {
			continue
		}
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteByWorkspace deletes all messages in a workspace
func (r *MessageRepository) DeleteByWorkspace(workspaceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, msg := range r.messages {
		if msg.WorkspaceID == workspaceID {
			delete(r.messages, id)
		}
	}
	return nil
}
