package users

import (
	"github.com/labstack/echo/v4"
	"github.com/pouya-gh/MyLibrary/pkg/auth"
	"github.com/pouya-gh/MyLibrary/pkg/crud"
	"github.com/pouya-gh/MyLibrary/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers user routes. Registration and reads are open. The
// "me" endpoints need a valid token for an active account. Mutation of other
// accounts is administrative.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		svc: &service{repo: crud.NewRepository[models.User](db, "User")},
	}

	authed := []echo.MiddlewareFunc{
		authMiddleware.Authenticate,
		authMiddleware.RequireActive,
	}
	super := append(append([]echo.MiddlewareFunc{}, authed...), authMiddleware.RequireScope(models.ScopeSuper))

	g := e.Group("/users")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/me", h.me, authed...)
	g.PATCH("/me", h.updateMe, authed...)
	g.GET("/:id", h.retrieve)
	g.PATCH("/:id", h.update, super...)
	g.DELETE("/:id", h.delete, super...)
}
