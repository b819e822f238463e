package message

import "errors"

// ErrAccessDenied indicates the requester is not a member of the workspace,
// or may not delete the message
var ErrAccessDenied = errors.New("access denied")
