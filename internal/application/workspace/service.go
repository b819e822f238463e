package workspace

import (
	"context"
	"fmt"
	"time"

	"notehive/internal/application/notification"
	"notehive/internal/domain/auth"
	"notehive/internal/domain/message"
	"notehive/internal/domain/note"
	"notehive/internal/domain/workspace"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Locker serializes membership mutations on a single workspace. Backed by
// Postgres advisory locks in production and a no-op in single-process setups
// where the repository's own locking suffices.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// NopLocker is a Locker that never blocks
type NopLocker struct{}

func (NopLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

// Service holds workspace business rules: creation, membership, bans, and
// cascading deletion of workspace content
type Service struct {
	workspaces workspace.Repository
	users      auth.Repository
	notes      note.Repository
	messages   message.Repository
	notifier   notification.Sender
	locks      Locker
}

// NewService creates a new workspace service
func NewService(workspaces workspace.Repository, users auth.Repository, notes note.Repository, messages message.Repository, notifier notification.Sender, locks Locker) *Service {
	if locks == nil {
		locks = NopLocker{}
	}
	if notifier == nil {
		notifier = notification.LogSender{}
	}
	return &Service{
		workspaces: workspaces,
		users:      users,
		notes:      notes,
		messages:   messages,
		notifier:   notifier,
		locks:      locks,
	}
}

// Create creates a workspace owned by ownerID. Workspace names are unique
// across the system.
func (s *Service) Create(ctx context.Context, ownerID string, req workspace.CreateWorkspaceRequest) (*workspace.Workspace, error) {
	if _, err := s.workspaces.GetWorkspaceByName(req.Name); err == nil {
		return nil, workspace.ErrNameTaken
	}

	now := time.Now()
	ws := &workspace.Workspace{
		ID:   uuid.New().String(),
		Name: req.Name,
		Profile: auth.Profile{
			Name:        req.Name,
			Description: req.Description,
			ImagePath:   req.ProfilePicture,
		},
		OwnerID:         ownerID,
		Members:         []string{ownerID},
		BannedMembers:   []string{},
		LatestMessageAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.workspaces.CreateWorkspace(ws); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return ws, nil
}

// CreatePersonal creates the private workspace every account gets at
// registration. Satisfies the auth service's WorkspaceProvisioner.
func (s *Service) CreatePersonal(ctx context.Context, owner *auth.User) (string, error) {
	req := workspace.CreateWorkspaceRequest{
		Name:           fmt.Sprintf("%s's Personal Workspace", owner.Profile.Name),
		Description:    "Your personal workspace for all your personal notes",
		ProfilePicture: owner.Profile.ImagePath,
	}
	ws, err := s.Create(ctx, owner.ID, req)
	if err != nil {
		return "", err
	}
	return ws.ID, nil
}

// Get retrieves a workspace for a member
func (s *Service) Get(ctx context.Context, workspaceID, userID string) (*workspace.Workspace, error) {
	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.IsMember(userID) {
		return nil, ErrAccessDenied
	}
	return ws, nil
}

// GetPersonal retrieves the user's personal workspace
func (s *Service) GetPersonal(ctx context.Context, user *auth.User) (*workspace.Workspace, error) {
	if user.PersonalWorkspaceID == "" {
		return nil, ErrNoPersonalWorkspace
	}
	return s.workspaces.GetWorkspace(user.PersonalWorkspaceID)
}

// ListForUser lists the workspaces the user belongs to, excluding their
// personal workspace
func (s *Service) ListForUser(ctx context.Context, user *auth.User) ([]*workspace.Workspace, error) {
	all, err := s.workspaces.ListWorkspacesByMember(user.ID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	out := make([]*workspace.Workspace, 0, len(all))
	for _, ws := range all {
		if ws.ID == user.PersonalWorkspaceID {
			continue
		}
		out = append(out, ws)
	}
	return out, nil
}

// Members returns the user records of a workspace's members
func (s *Service) Members(ctx context.Context, workspaceID, userID string) ([]*auth.User, error) {
	ws, err := s.Get(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	return s.users.ListUsersByIDs(ws.Members)
}

// MembershipStatus reports checkUserID's relation to the workspace
func (s *Service) MembershipStatus(ctx context.Context, workspaceID, checkUserID string) (workspace.MembershipStatus, error) {
	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return "", err
	}
	return ws.Status(checkUserID), nil
}

// Invite adds inviteeID to the workspace. Any member may invite. Banned
// users cannot be re-invited. The invitee gets a push notification when they
// have a registered device token.
func (s *Service) Invite(ctx context.Context, workspaceID, requesterID, inviteeID string) (*workspace.Workspace, error) {
	release, err := s.locks.Acquire(ctx, "workspace:"+workspaceID)
	if err != nil {
		return nil, fmt.Errorf("acquire membership lock: %w", err)
	}
	defer func() { _ = release(ctx) }()

	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.IsMember(requesterID) {
		return nil, ErrAccessDenied
	}

	invitee, err := s.users.GetUser(inviteeID)
	if err != nil {
		return nil, err
	}
	if ws.IsBanned(invitee.ID) {
		return nil, ErrUserBanned
	}
	if ws.IsMember(invitee.ID) {
		return nil, ErrAlreadyMember
	}

	ws.Members = append(ws.Members, invitee.ID)
	ws.UpdatedAt = time.Now()
	if err := s.workspaces.UpdateWorkspace(ws); err != nil {
		return nil, fmt.Errorf("update workspace: %w", err)
	}

	if invitee.FCMToken != "" {
		if err := s.notifier.Send(ctx, invitee.FCMToken,
			"Workspace invitation",
			fmt.Sprintf("You have been added to %s", ws.Name),
			map[string]string{"workspace_id": ws.ID},
		); err != nil {
			log.Warn().Err(err).Str("workspace_id", ws.ID).Msg("Failed to send invite notification")
		}
	}
	return ws, nil
}

// Leave removes userID from the workspace. The owner cannot leave.
func (s *Service) Leave(ctx context.Context, workspaceID, userID string) error {
	release, err := s.locks.Acquire(ctx, "workspace:"+workspaceID)
	if err != nil {
		return fmt.Errorf("acquire membership lock: %w", err)
	}
	defer func() { _ = release(ctx) }()

	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return err
	}
	if ws.IsOwner(userID) {
		return ErrOwnerCannotLeave
	}
	if !ws.IsMember(userID) {
		return ErrAccessDenied
	}

	ws.Members = removeID(ws.Members, userID)
	ws.UpdatedAt = time.Now()
	if err := s.workspaces.UpdateWorkspace(ws); err != nil {
		return fmt.Errorf("update workspace: %w", err)
	}
	return nil
}

// Ban removes targetID from the workspace and prevents them from being
// re-invited. Owner only; the owner cannot be banned.
func (s *Service) Ban(ctx context.Context, workspaceID, requesterID, targetID string) (*workspace.Workspace, error) {
	release, err := s.locks.Acquire(ctx, "workspace:"+workspaceID)
	if err != nil {
		return nil, fmt.Errorf("acquire membership lock: %w", err)
	}
	defer func() { _ = release(ctx) }()

	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.IsOwner(requesterID) {
		return nil, ErrNotOwner
	}
	if ws.IsOwner(targetID) {
		return nil, ErrNotOwner
	}

	ws.Members = removeID(ws.Members, targetID)
	if !ws.IsBanned(targetID) {
		ws.BannedMembers = append(ws.BannedMembers, targetID)
	}
	ws.UpdatedAt = time.Now()
	if err := s.workspaces.UpdateWorkspace(ws); err != nil {
		return nil, fmt.Errorf("update workspace: %w", err)
	}
	return ws, nil
}

// UpdateProfile updates the workspace's profile fields. Owner only.
func (s *Service) UpdateProfile(ctx context.Context, workspaceID, requesterID string, req workspace.UpdateProfileRequest) (*workspace.Workspace, error) {
	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.IsOwner(requesterID) {
		return nil, ErrNotOwner
	}

	if req.Name != "" {
		ws.Profile.Name = req.Name
	}
	if req.Description != "" {
		ws.Profile.Description = req.Description
	}
	ws.UpdatedAt = time.Now()
	if err := s.workspaces.UpdateWorkspace(ws); err != nil {
		return nil, fmt.Errorf("update workspace: %w", err)
	}
	return ws, nil
}

// UpdatePicture replaces the workspace picture. Owner only.
func (s *Service) UpdatePicture(ctx context.Context, workspaceID, requesterID string, imagePath string) (*workspace.Workspace, error) {
	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.IsOwner(requesterID) {
		return nil, ErrNotOwner
	}

	ws.Profile.ImagePath = imagePath
	ws.UpdatedAt = time.Now()
	if err := s.workspaces.UpdateWorkspace(ws); err != nil {
		return nil, fmt.Errorf("update workspace: %w", err)
	}
	return ws, nil
}

// Delete removes the workspace along with its notes and chat messages.
// Owner only.
func (s *Service) Delete(ctx context.Context, workspaceID, requesterID string) error {
	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return err
	}
	if !ws.IsOwner(requesterID) {
		return ErrNotOwner
	}

	if err := s.notes.DeleteByWorkspace(workspaceID); err != nil {
		return fmt.Errorf("delete workspace notes: %w", err)
	}
	if err := s.messages.DeleteByWorkspace(workspaceID); err != nil {
		return fmt.Errorf("delete workspace messages: %w", err)
	}
	if err := s.workspaces.DeleteWorkspace(workspaceID); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}

// AllTags returns the distinct note tags used across the workspace
func (s *Service) AllTags(ctx context.Context, workspaceID, userID string) ([]string, error) {
	if _, err := s.Get(ctx, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.notes.DistinctTags(workspaceID)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
