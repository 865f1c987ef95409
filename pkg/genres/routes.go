package genres

import (
	"github.com/labstack/echo/v4"
	"github.com/pouya-gh/MyLibrary/pkg/auth"
	"github.com/pouya-gh/MyLibrary/pkg/crud"
	"github.com/pouya-gh/MyLibrary/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers genre routes. Reads are public; mutation needs
// the super scope.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		repo: crud.NewRepository[models.Genre](db, "Genre"),
	}

	super := []echo.MiddlewareFunc{
		authMiddleware.Authenticate,
		authMiddleware.RequireActive,
		authMiddleware.RequireScope(models.ScopeSuper),
	}

	g := e.Group("/genres")
	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create, super...)
	g.PATCH("/:id", h.update, super...)
	g.DELETE("/:id", h.delete, super...)
}
