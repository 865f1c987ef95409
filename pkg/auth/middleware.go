package auth

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pouya-gh/MyLibrary/pkg/errcodes"
	"github.com/pouya-gh/MyLibrary/pkg/models"
)

// Context keys for storing the authenticated principal.
const (
	ContextKeyUser   = "user"
	ContextKeyClaims = "claims"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate extracts and validates the bearer token from the
// Authorization header. Cryptographic validity is necessary but not
// sufficient: the token's subject must still exist. On success the user and
// claims are stored in the context.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		token, ok := bearerToken(c)
		if !ok {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return errcodes.Unauthorized("Could not validate credentials")
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return errcodes.Unauthorized("Could not validate credentials")
		}

		user, err := m.authService.GetUserByUsername(ctx, claims.Subject)
		if err != nil {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return errcodes.Unauthorized("Could not validate credentials")
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyClaims, claims)

		return next(c)
	}
}

// RequireActive rejects deactivated users. Must be used after Authenticate.
func (m *Middleware) RequireActive(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get(ContextKeyUser).(*models.User)
		if !ok {
			return errcodes.Unauthorized("Could not validate credentials")
		}

		if !user.IsActive {
			return errcodes.InactiveUser()
		}

		return next(c)
	}
}

// RequireScope rejects tokens that were not granted the given scope at
// issuance. Must be used after Authenticate. The failure response carries a
// challenge header naming the required scope.
func (m *Middleware) RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ContextKeyClaims).(*JWTClaims)
			if !ok {
				return errcodes.Unauthorized("Could not validate credentials")
			}

			if !claims.HasScope(scope) {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, fmt.Sprintf("Bearer scope=%q", scope))
				return errcodes.InsufficientScope(scope)
			}

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// UserFromContext retrieves the authenticated user from the Echo context.
func UserFromContext(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	return user, ok
}
