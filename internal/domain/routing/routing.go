// Package routing resolves default navigation targets and route access from
// a principal's role. Both tables are exhaustive and fail closed: an unknown
// role lands on the public login path and is allowed on nothing gated.
package routing

import "github.com/consite-erp/consite-backend-go/internal/domain/user"

const (
	PathLogin             = "/login"
	PathAdminDashboard    = "/dashboard"
	PathEngineerDashboard = "/tender-engineer/dashboard"
)

var landingPaths = map[user.Role]string{
	user.RoleAdmin:          PathAdminDashboard,
	user.RoleTenderEngineer: PathEngineerDashboard,
}

// LandingPathFor returns the default navigation target for the principal.
func LandingPathFor(p user.Principal) string {
	if path, ok := landingPaths[p.Role]; ok {
		return path
	}
	return PathLogin
}

// RouteClass groups screens that share one access rule.
type RouteClass string

const (
	// RouteAdminAssignment covers the assignment screens where staff issue
	// and complete invitations.
	RouteAdminAssignment RouteClass = "admin.assignment"
	// RouteEngineerSubmission covers the screens where an engineer views and
	// responds to a tender.
	RouteEngineerSubmission RouteClass = "engineer.submission"
	// RoutePublic covers unauthenticated surfaces.
	RoutePublic RouteClass = "public"
)

// allowedRoles is an explicit allow-list per route class. Capability is
// checked against the role value, never inferred from other principal fields.
var allowedRoles = map[RouteClass][]user.Role{
	RouteAdminAssignment:    {user.RoleAdmin},
	RouteEngineerSubmission: {user.RoleTenderEngineer},
	RoutePublic:             {user.RoleAdmin, user.RoleTenderEngineer},
}

// Allowed reports whether the principal may access the route class. Unknown
// route classes and unknown roles are both denied.
func Allowed(route RouteClass, p user.Principal) bool {
	if route == RoutePublic {
		return true
	}
	for _, role := range allowedRoles[route] {
		if p.Role == role {
			return true
		}
	}
	return false
}
