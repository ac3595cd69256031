package middleware

import (
	"context"

	"github.com/consite-erp/consite-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// PrincipalFromContext rebuilds the principal from session claims. This is
// the session layer's only contract with the core: who is calling, not how
// they logged in.
func PrincipalFromContext(ctx context.Context) (user.Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Principal{}, user.ErrInvalidSession
	}

	id, _ := claims["principal_id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	if id == "" || role == "" {
		return user.Principal{}, user.ErrInvalidSession
	}

	return user.Principal{
		ID:    id,
		Email: email,
		Role:  user.Role(role),
	}, nil
}
