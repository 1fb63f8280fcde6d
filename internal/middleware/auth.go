package middleware

import (
	"net/http"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/repository"
	"github.com/labstack/echo/v4"
)

// CookieName is the cookie carrying the opaque auth token.
const CookieName = "auth_token"

const identityKey = "identity"

type AuthMiddleware struct {
	tokens repository.TokenRepository
}

func NewAuthMiddleware(tokens repository.TokenRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// ResolveIdentity attaches the acting user to the request context when
// the auth_token cookie matches a stored token. It deliberately fails
// open: a missing, unmatched or unreadable token leaves the request
// anonymous and surfaces no error.
func (m *AuthMiddleware) ResolveIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieName)
		if err == nil && cookie.Value != "" {
			user, err := m.tokens.FindUserByKey(c.Request().Context(), cookie.Value)
			if err == nil && user != nil {
				c.Set(identityKey, user)
			}
		}
		return next(c)
	}
}

// RequireAuth rejects requests that resolved to an anonymous identity.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		return next(c)
	}
}

// CurrentUser returns the resolved user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(identityKey).(*model.User)
	return user
}
