package workspace

import "errors"

var (
	// ErrAccessDenied indicates the requesting user is not a member of the workspace
	ErrAccessDenied = errors.New("access denied: not a member of this workspace")

	// ErrNotOwner indicates an owner-only operation was attempted by a non-owner
	ErrNotOwner = errors.New("access denied: workspace owner required")

	// ErrAlreadyMember indicates an invite for a user who is already a member
	ErrAlreadyMember = errors.New("user is already a member")

	// ErrUserBanned indicates an invite or join attempt for a banned user
	ErrUserBanned = errors.New("user is banned from this workspace")

	// ErrOwnerCannotLeave indicates the owner tried to leave their own workspace
	ErrOwnerCannotLeave = errors.New("owner cannot leave their own workspace")

	// ErrNoPersonalWorkspace indicates the user has no personal workspace recorded
	ErrNoPersonalWorkspace = errors.New("user does not have a personal workspace")
)
