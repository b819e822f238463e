package note

import (
	"encoding/json"
	"time"
)

// Type classifies a note
type Type string

const (
	TypeContent  Type = "CONTENT"
	TypeChat     Type = "CHAT"
	TypeTemplate Type = "TEMPLATE"
)

// Valid reports whether t is a known note type
func (t Type) Valid() bool {
	switch t {
	case TypeContent, TypeChat, TypeTemplate:
		return true
	}
	return false
}

// Note is a document owned by a user and attached to a workspace.
// Fields are client-defined JSON objects and are stored opaquely.
type Note struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	WorkspaceID string            `json:"workspace_id"`
	Fields      []json.RawMessage `json:"fields"`
	NoteType    Type              `json:"note_type"`
	Tags        []string          `json:"tags"`
	VectorData  []float64         `json:"vector_data,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateNoteRequest represents a request to create a note
type CreateNoteRequest struct {
	WorkspaceID string            `json:"workspace_id" binding:"required"`
	Fields      []json.RawMessage `json:"fields"`
	NoteType    Type              `json:"note_type"`
	Tags        []string          `json:"tags"`
}

// UpdateNoteRequest represents a request to update a note's tags and fields
type UpdateNoteRequest struct {
	Tags   []string          `json:"tags"`
	Fields []json.RawMessage `json:"fields"`
}

// Filter narrows a workspace note listing
type Filter struct {
	NoteType Type     // zero value matches all types
	Tags     []string // notes carrying any of these tags
	Query    string   // case-insensitive substring over field content
}
