package memory

import (
	"sync"
	"time"

	"notehive/internal/domain/workspace"
)

// WorkspaceRepository is an in-memory implementation of the workspace repository
type WorkspaceRepository struct {
	mu         sync.RWMutex
	workspaces map[string]*workspace.Workspace // workspaceID -> Workspace
	byName     map[string]*workspace.Workspace // name -> Workspace
}

// NewWorkspaceRepository creates a new in-memory workspace repository
func NewWorkspaceRepository() *WorkspaceRepository {
	return &WorkspaceRepository{
		workspaces: make(map[string]*workspace.Workspace),
		byName:     make(map[string]*workspace.Workspace),
	}
}

// GetWorkspace retrieves a workspace by ID
func (r *WorkspaceRepository) GetWorkspace(id string) (*workspace.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.workspaces[id]
	if !exists {
		return nil, workspace.ErrWorkspaceNotFound
	}
	return ws, nil
}

// GetWorkspaceByName retrieves a workspace by its unique name
func (r *WorkspaceRepository) GetWorkspaceByName(name string) (*workspace.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.byName[name]
	if !exists {
		return nil, workspace.ErrWorkspaceNotFound
	}
	return ws, nil
}

// CreateWorkspace creates a new workspace
func (r *WorkspaceRepository) CreateWorkspace(ws *workspace.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[ws.Name]; exists {
		return workspace.ErrNameTaken
	}

	r.workspaces[ws.ID] = ws
	r.byName[ws.Name] = ws
	return nil
}

// UpdateWorkspace updates an existing workspace
func (r *WorkspaceRepository) UpdateWorkspace(ws *workspace.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, exists := r.workspaces[ws.ID]
	if !exists {
		return workspace.ErrWorkspaceNotFound
	}

	if old.Name != ws.Name {
		delete(r.byName, old.Name)
		r.byName[ws.Name] = ws
	}

	r.workspaces[ws.ID] = ws
	return nil
}

// DeleteWorkspace deletes a workspace
func (r *WorkspaceRepository) DeleteWorkspace(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, exists := r.workspaces[id]
	if !exists {
		return workspace.ErrWorkspaceNotFound
	}

	delete(r.workspaces, id)
	delete(r.byName, ws.Name)
	return nil
}

// ListWorkspacesByMember retrieves all workspaces the user is a member of
func (r *WorkspaceRepository) ListWorkspacesByMember(userID string) ([]*workspace.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*workspace.Workspace, 0)
	for _, ws := range r.workspaces {
		if ws.IsMember(userID) {
			out = append(out, ws)
		}
	}
	return out, nil
}

// TouchLatestMessage bumps the workspace's latest chat message timestamp
func (r *WorkspaceRepository) TouchLatestMessage(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, exists := r.workspaces[id]
	if !exists {
		return workspace.ErrWorkspaceNotFound
	}
	ws.LatestMessageAt = at
	return nil
}
