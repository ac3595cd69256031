package middleware

import (
	"net/http"

	"github.com/consite-erp/consite-backend-go/internal/domain/routing"
	"github.com/consite-erp/consite-backend-go/internal/domain/user"
	"github.com/consite-erp/consite-backend-go/internal/handler/http/response"
)

// RequireRoute gates a route class behind the routing allow-list. Denials
// fail closed: a missing or unknown role is rejected, never let through.
func RequireRoute(route routing.RouteClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := PrincipalFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !routing.Allowed(route, principal) {
				response.HandleError(w, denialFor(route))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// denialFor picks the error reported when the allow-list rejects the caller,
// so the response names the role the route class actually requires.
func denialFor(route routing.RouteClass) error {
	switch route {
	case routing.RouteAdminAssignment:
		return user.ErrAdminAccessRequired
	case routing.RouteEngineerSubmission:
		return user.ErrEngineerAccessRequired
	}
	return user.ErrRouteAccessDenied
}
