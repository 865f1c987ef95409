package bookinstances

import (
	"github.com/labstack/echo/v4"
	"github.com/pouya-gh/MyLibrary/pkg/auth"
	"github.com/pouya-gh/MyLibrary/pkg/crud"
	"github.com/pouya-gh/MyLibrary/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers book instance routes. Reads are public, catalog
// mutation needs the super scope, and the lending transitions only need an
// active authenticated user.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		repo: crud.NewRepository[models.BookInstance](db, "Book instance"),
		svc:  NewService(db),
	}

	authed := []echo.MiddlewareFunc{
		authMiddleware.Authenticate,
		authMiddleware.RequireActive,
	}
	super := append(append([]echo.MiddlewareFunc{}, authed...), authMiddleware.RequireScope(models.ScopeSuper))

	g := e.Group("/bookinstances")
	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create, super...)
	g.PATCH("/:id", h.update, super...)
	g.DELETE("/:id", h.delete, super...)

	g.POST("/:id/borrow", h.borrow, authed...)
	g.POST("/:id/reserve", h.reserve, authed...)
	g.POST("/:id/return", h.returnInstance, authed...)
}
