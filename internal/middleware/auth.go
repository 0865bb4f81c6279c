package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicadev/clinic-api/internal/domain/access"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/security"
)

const (
	ContextPrincipal = "principal"
	ContextClaims    = "tokenClaims"
)

// UserFinder loads the user a token was issued to.
type UserFinder interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware accepts a bearer token, rejects revoked ones and reloads
// the user on every request, so role changes and deletions apply at once.
func AuthMiddleware(
	tokens *security.TokenIssuer,
	revoker security.Revoker,
	users UserFinder,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Respond(c, httperr.Unauthenticated("missing_authorization_header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Respond(c, httperr.Unauthenticated("invalid_authorization_header"))
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Respond(c, httperr.Unauthenticated("invalid_token"))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			httperr.Respond(c, httperr.Unauthenticated("invalid_token_payload"))
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			httperr.Respond(c, httperr.StorageFailure(err))
			return
		}
		if revoked {
			httperr.Respond(c, httperr.Unauthenticated("token_revoked"))
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if errors.Is(err, httperr.ErrRecordNotFound) {
			httperr.Respond(c, httperr.Unauthenticated("user_not_found"))
			return
		}
		if err != nil {
			httperr.Respond(c, httperr.StorageFailure(err))
			return
		}

		c.Set(ContextPrincipal, access.FromUser(user))
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// PrincipalFrom returns the authenticated principal, or nil on public
// routes.
func PrincipalFrom(c *gin.Context) *access.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*access.Principal)
	return p
}

func ClaimsFrom(c *gin.Context) *security.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*security.Claims)
	return claims
}
