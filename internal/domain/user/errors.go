package user

import "errors"

var (
	ErrInvalidSession         = errors.New("invalid session token")
	ErrAdminAccessRequired    = errors.New("admin access required")
	ErrEngineerAccessRequired = errors.New("tender engineer access required")
	ErrRouteAccessDenied      = errors.New("role is not allowed on this route")
)
