package http

import (
	"net/http"

	"github.com/consite-erp/consite-backend-go/internal/domain/routing"
	"github.com/consite-erp/consite-backend-go/internal/handler/http/middleware"
	"github.com/consite-erp/consite-backend-go/internal/handler/http/response"
)

type SessionHandler interface {
	// Landing resolves the default navigation target for the caller's role
	Landing(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct{}

func NewSessionHandler() SessionHandler {
	return &sessionHandlerImpl{}
}

// Landing implements SessionHandler. A caller without a usable session or
// with an unrecognised role is pointed at the login path, not rejected; the
// front end treats the path as the answer either way.
func (h *sessionHandlerImpl) Landing(w http.ResponseWriter, r *http.Request) {
	path := routing.PathLogin
	if principal, err := middleware.PrincipalFromContext(r.Context()); err == nil {
		path = routing.LandingPathFor(principal)
	}

	response.Success(w, map[string]string{"path": path})
}
