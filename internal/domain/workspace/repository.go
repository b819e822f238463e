package workspace

import (
	"errors"
	"time"
)

// ErrWorkspaceNotFound is returned by repositories when no workspace matches
var ErrWorkspaceNotFound = errors.New("workspace not found")

// ErrNameTaken is returned when a workspace name is already in use
var ErrNameTaken = errors.New("workspace name already in use")

// Repository defines the interface for workspace persistence
type Repository interface {
	// GetWorkspace retrieves a workspace by ID
	GetWorkspace(workspaceID string) (*Workspace, error)

	// GetWorkspaceByName retrieves a workspace by its unique name
	GetWorkspaceByName(name string) (*Workspace, error)

	// CreateWorkspace creates a new workspace
	CreateWorkspace(ws *Workspace) error

	// UpdateWorkspace persists changes to an existing workspace
	UpdateWorkspace(ws *Workspace) error

	// DeleteWorkspace deletes a workspace
	DeleteWorkspace(workspaceID string) error

	// ListWorkspacesByMember retrieves all workspaces userID is a member of
	ListWorkspacesByMember(userID string) ([]*Workspace, error)

	// TouchLatestMessage updates the latest chat message timestamp
	TouchLatestMessage(workspaceID string, at time.Time) error
}
