package message

import "time"

// Message is a single chat message inside a workspace
type Message struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	AuthorID    string    `json:"author_id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateMessageRequest represents a request to post a chat message
type CreateMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}
