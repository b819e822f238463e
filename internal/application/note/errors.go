package note

import "errors"

var (
	// ErrAccessDenied indicates the requester may not see or touch the note
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidNoteType indicates an unknown note type in a request
	ErrInvalidNoteType = errors.New("invalid note type")
)
