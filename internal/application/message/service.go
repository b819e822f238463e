package message

import (
	"context"
	"fmt"
	"time"

	"notehive/internal/application/notification"
	"notehive/internal/domain/auth"
	"notehive/internal/domain/message"
	"notehive/internal/domain/workspace"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultPageSize bounds a message listing when no limit is given
	DefaultPageSize = 50
	// MaxPageSize is the hard cap on a single listing
	MaxPageSize = 200
)

// Service holds chat message business rules
type Service struct {
	messages   message.Repository
	workspaces workspace.Repository
	users      auth.Repository
	notifier   notification.Sender
}

// NewService creates a new message service
func NewService(messages message.Repository, workspaces workspace.Repository, users auth.Repository, notifier notification.Sender) *Service {
	if notifier == nil {
		notifier = notification.LogSender{}
	}
	return &Service{
		messages:   messages,
		workspaces: workspaces,
		users:      users,
		notifier:   notifier,
	}
}

// List returns up to limit messages in the workspace created before the
// cursor, newest first. Member only.
func (s *Service) List(ctx context.Context, userID, workspaceID string, limit int, before time.Time) ([]*message.Message, error) {
	if _, err := s.requireMember(workspaceID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return s.messages.ListByWorkspace(workspaceID, limit, before)
}

// Create posts a message to the workspace, bumps the workspace's latest
// message timestamp, and pushes a notification to every other member with a
// registered device. Member only.
func (s *Service) Create(ctx context.Context, userID, workspaceID, content string) (*message.Message, error) {
	ws, err := s.requireMember(workspaceID, userID)
	if err != nil {
		return nil, err
	}

	msg := &message.Message{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		AuthorID:    userID,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := s.messages.CreateMessage(msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if err := s.workspaces.TouchLatestMessage(workspaceID, msg.CreatedAt); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("Failed to bump latest message timestamp")
	}

	s.notifyMembers(ctx, ws, msg)
	return msg, nil
}

// Delete removes a message. Allowed for the author and the workspace owner.
func (s *Service) Delete(ctx context.Context, userID, messageID string) error {
	msg, err := s.messages.GetMessage(messageID)
	if err != nil {
		return err
	}

	if msg.AuthorID != userID {
		ws, err := s.workspaces.GetWorkspace(msg.WorkspaceID)
		if err != nil {
			return err
		}
		if !ws.IsOwner(userID) {
			return ErrAccessDenied
		}
	}
	return s.messages.DeleteMessage(messageID)
}

// notifyMembers pushes the new message to every member other than the
// author. Failures are logged and never propagate.
func (s *Service) notifyMembers(ctx context.Context, ws *workspace.Workspace, msg *message.Message) {
	author, err := s.users.GetUser(msg.AuthorID)
	if err != nil {
		log.Warn().Err(err).Str("author_id", msg.AuthorID).Msg("Failed to load message author")
		return
	}

	members, err := s.users.ListUsersByIDs(ws.Members)
	if err != nil {
		log.Warn().Err(err).Str("workspace_id", ws.ID).Msg("Failed to load workspace members")
		return
	}

	for _, member := range members {
		if member.ID == msg.AuthorID || member.FCMToken == "" {
			continue
		}
		if err := s.notifier.Send(ctx, member.FCMToken,
			ws.Name,
			fmt.Sprintf("%s: %s", author.Profile.Name, msg.Content),
			map[string]string{"workspace_id": ws.ID, "message_id": msg.ID},
		); err != nil {
			log.Warn().Err(err).Str("user_id", member.ID).Msg("Failed to push chat notification")
		}
	}
}

func (s *Service) requireMember(workspaceID, userID string) (*workspace.Workspace, error) {
	ws, err := s.workspaces.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.IsMember(userID) {
		return nil, ErrAccessDenied
	}
	return ws, nil
}
