package user

type Role string

const (
	RoleAdmin          Role = "ADMIN"           // Back-office staff - issues invitations, runs assignment screens
	RoleTenderEngineer Role = "TENDER_ENGINEER" // External engineer - views and responds to a project's tender
)

// Principal is an authenticated actor as seen by the core. It is built from
// session claims, never loaded from storage; an invitation may be addressed
// to an email that has no principal yet.
type Principal struct {
	ID    string
	Email string
	Role  Role
}

// IsTenderEngineer checks if the principal is an external tender engineer
func (p *Principal) IsTenderEngineer() bool {
	return p.Role == RoleTenderEngineer
}
