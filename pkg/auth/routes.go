package auth

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the token endpoint and returns the auth service
// for use by the route groups that need middleware.
func RegisterRoutes(e *echo.Echo, db *bun.DB, jwtSecret string, tokenExpiry time.Duration) *Service {
	authService := NewService(db, jwtSecret, tokenExpiry)

	h := &handler{
		authService: authService,
	}

	e.POST("/token", h.token)

	return authService
}
