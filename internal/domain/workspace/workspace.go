package workspace

import (
	"time"

	"notehive/internal/domain/auth"
)

// MembershipStatus describes a user's relation to a workspace
type MembershipStatus string

const (
	StatusOwner  MembershipStatus = "owner"
	StatusMember MembershipStatus = "member"
	StatusBanned MembershipStatus = "banned"
	StatusNone   MembershipStatus = "none"
)

// Workspace is a shared container for notes and chat messages
type Workspace struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Profile         auth.Profile `json:"profile"`
	OwnerID         string       `json:"owner_id"`
	Members         []string     `json:"members"`
	BannedMembers   []string     `json:"banned_members"`
	LatestMessageAt time.Time    `json:"latest_message_at"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// IsOwner reports whether userID owns the workspace
func (w *Workspace) IsOwner(userID string) bool {
	return w.OwnerID == userID
}

// IsMember reports whether userID is a member (the owner always is)
func (w *Workspace) IsMember(userID string) bool {
	for _, id := range w.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// IsBanned reports whether userID has been banned from the workspace
func (w *Workspace) IsBanned(userID string) bool {
	for _, id := range w.BannedMembers {
		if id == userID {
			return true
		}
	}
	return false
}

// Status returns the membership status of userID
func (w *Workspace) Status(userID string) MembershipStatus {
	switch {
	case w.IsOwner(userID):
		return StatusOwner
	case w.IsBanned(userID):
		return StatusBanned
	case w.IsMember(userID):
		return StatusMember
	default:
		return StatusNone
	}
}

// CreateWorkspaceRequest represents a request to create a workspace
type CreateWorkspaceRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	ProfilePicture string `json:"profile_picture"`
}

// UpdateProfileRequest represents a request to update a workspace profile
type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdatePictureRequest represents a request to update a workspace picture
type UpdatePictureRequest struct {
	ImagePath string `json:"image_path" binding:"required"`
}
