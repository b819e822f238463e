package note

import "errors"

// ErrNoteNotFound is returned by repositories when no note matches
var ErrNoteNotFound = errors.New("note not found")

// Repository defines the interface for note persistence
type Repository interface {
	// GetNote retrieves a note by ID
	GetNote(noteID string) (*Note, error)

	// CreateNote creates a new note
	CreateNote(n *Note) error

	// UpdateNote persists changes to an existing note
	UpdateNote(n *Note) error

	// DeleteNote deletes a note
	DeleteNote(noteID string) error

	// FindByWorkspace retrieves notes in a workspace matching the filter,
	// newest first
	FindByWorkspace(workspaceID string, f Filter) ([]*Note, error)

	// DistinctTags returns the distinct tags used across a workspace's notes
	DistinctTags(workspaceID string) ([]string, error)

	// DeleteByWorkspace deletes all notes in a workspace
	DeleteByWorkspace(workspaceID string) error

	// DeleteByUser deletes all notes owned by a user
	DeleteByUser(userID string) error
}
