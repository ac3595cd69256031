package invitation

import "errors"

var (
	ErrInvalidFormat      = errors.New("invitation token is malformed")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrIdentityMismatch   = errors.New("principal does not match the invitation recipient")
	ErrUnauthorizedRole   = errors.New("principal role cannot consume an engineer invitation")
	ErrInvalidTransition  = errors.New("invitation status transition is not allowed")
	ErrDuplicateToken     = errors.New("invitation token already exists")
)
