package auth

import "time"

// Profile holds a user's public profile fields
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImagePath   string `json:"image_path"`
}

// User represents a registered user
type User struct {
	ID                  string    `json:"id"`
	GoogleID            string    `json:"google_id"` // identity provider subject ID
	Email               string    `json:"email"`
	Profile             Profile   `json:"profile"`
	FCMToken            string    `json:"-"` // device push token, never exposed
	PersonalWorkspaceID string    `json:"personal_workspace_id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UpdateProfileRequest represents a request to update the current user's profile
type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty" binding:"max=500"`
	ImagePath   string `json:"image_path,omitempty"`
}

// UpdateFCMTokenRequest registers a device push token for the current user
type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcm_token" binding:"required"`
}
