package note

import (
	"context"
	"fmt"
	"time"

	"notehive/internal/domain/note"
	"notehive/internal/domain/workspace"

	"github.com/google/uuid"
)

// Service holds note business rules. Access control is derived from
// workspace membership: reading requires membership of the note's workspace,
// writing requires note ownership.
type Service struct {
	notes      note.Repository
	workspaces workspace.Repository
}

// NewService creates a new note service
func NewService(notes note.Repository, workspaces workspace.Repository) *Service {
	return &Service{notes: notes, workspaces: workspaces}
}

// Create creates a note in a workspace the author belongs to
func (s *Service) Create(ctx context.Context, userID string, req note.CreateNoteRequest) (*note.Note, error) {
	if err := s.requireMember(req.WorkspaceID, userID); err != nil {
		return nil, err
	}

	noteType := req.NoteType
	if noteType == "" {
		noteType = note.TypeContent
	}
	if !noteType.Valid() {
		return nil, ErrInvalidNoteType
	}

	now := time.Now()
	n := &note.Note{
		ID:          uuid.New().String(),
		UserID:      userID,
		WorkspaceID: req.WorkspaceID,
		Fields:      req.Fields,
		NoteType:    noteType,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}

	if err := s.notes.CreateNote(n); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// Get retrieves a note visible to userID: their own, or any note in a
// workspace they belong to
func (s *Service) Get(ctx context.Context, noteID, userID string) (*note.Note, error) {
	n, err := s.notes.GetNote(noteID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		if err := s.requireMember(n.WorkspaceID, userID); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Update replaces a note's tags and fields. Owner only.
func (s *Service) Update(ctx context.Context, noteID, userID string, req note.UpdateNoteRequest) (*note.Note, error) {
	n, err := s.notes.GetNote(noteID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrAccessDenied
	}

	n.Tags = req.Tags
	n.Fields = req.Fields
	n.UpdatedAt = time.Now()
	if err := s.notes.UpdateNote(n); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

// Delete removes a note. Owner only.
func (s *Service) Delete(ctx context.Context, noteID, userID string) (*note.Note, error) {
	n, err := s.notes.GetNote(noteID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrAccessDenied
	}
	if err := s.notes.DeleteNote(noteID); err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}
	return n, nil
}

// Find lists a workspace's notes matching the filter, for members
func (s *Service) Find(ctx context.Context, userID, workspaceID string, f note.Filter) ([]*note.Note, error) {
	if err := s.requireMember(workspaceID, userID); err != nil {
		return nil, err
	}
	if f.NoteType != "" && !f.NoteType.Valid() {
		return nil, ErrInvalidNoteType
	}
	return s.notes.FindByWorkspace(workspaceID, f)
}

// ShareToWorkspace moves a note into another workspace. The requester must
// own the note and belong to the target workspace.
func (s *Service) ShareToWorkspace(ctx context.Context, noteID, userID, targetWorkspaceID string) (*note.Note, error) {
	n, err := s.notes.GetNote(noteID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrAccessDenied
	}
	if err := s.requireMember(targetWorkspaceID, userID); err != nil {
		return nil, err
	}

	n.WorkspaceID = targetWorkspaceID
	n.UpdatedAt = time.Now()
	if err := s.notes.UpdateNote(n); err != nil {
		return nil, fmt.Errorf("share note: %w", err)
	}
	return n, nil
}

// CopyToWorkspace duplicates a note into another workspace under a new ID.
// The requester must be able to see the source note and belong to the
// target workspace; the copy is owned by the requester.
func (s *Service) CopyToWorkspace(ctx context.Context, noteID, userID, targetWorkspaceID string) (*note.Note, error) {
	src, err := s.Get(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(targetWorkspaceID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	dup := &note.Note{
		ID:          uuid.New().String(),
		UserID:      userID,
		WorkspaceID: targetWorkspaceID,
		Fields:      src.Fields,
		NoteType:    src.NoteType,
		Tags:        src.Tags,
		VectorData:  src.VectorData,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.notes.CreateNote(dup); err != nil {
		return nil, fmt.Errorf("copy note: %w", err)
	}
	return dup, nil
}

// DeleteAllForUser removes every note owned by userID, across all
// workspaces. Used when the account is deleted.
func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	if err := s.notes.DeleteByUser(userID); err != nil {
		return fmt.Errorf("delete user notes: %w", err)
	}
	return nil
}

// WorkspaceForNote returns the ID of the workspace a note lives in
func (s *Service) WorkspaceForNote(ctx context.Context, noteID string) (string, error) {
	n, err := s.notes.GetNote(noteID)
	if err != nil {
		return "", err
	}
	return n.WorkspaceID, nil
}

func (s *Service) requireMember(workspaceID, userID string) error {
	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return err
	}
	if !ws.IsMember(userID) {
		return ErrAccessDenied
	}
	return nil
}
