package bookinstances

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/pouya-gh/MyLibrary/pkg/auth"
	"github.com/pouya-gh/MyLibrary/pkg/crud"
	"github.com/pouya-gh/MyLibrary/pkg/errcodes"
	"github.com/pouya-gh/MyLibrary/pkg/models"
	"github.com/uptrace/bun"
)

const dateFormat = "2006-01-02"

// parseDate rejects values the date validator's format check lets through but
// that aren't real calendar dates, e.g. a zero month.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, errcodes.ValidationError(fmt.Sprintf("%q should be in the format of YYYY-MM-DD", field))
	}
	return t, nil
}

type handler struct {
	repo *crud.Repository[models.BookInstance]
	svc  *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBookInstancesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	instances, err := h.repo.List(ctx, crud.ListOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		Apply: func(q *bun.SelectQuery) *bun.SelectQuery {
			if params.Status != nil {
				q = q.Where("bi.status = ?", *params.Status)
			}
			return q
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, instances))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	instance, err := h.repo.Retrieve(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, instance))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookInstancePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	instance := &models.BookInstance{
		ID:      uuid.NewString(),
		BookID:  params.BookID,
		Imprint: params.Imprint,
		Status:  models.StatusMaintenance,
	}
	if params.Status != nil {
		instance.Status = *params.Status
	}
	if params.DueBack != nil && *params.DueBack != "" {
		dueBack, err := parseDate("due_back", *params.DueBack)
		if err != nil {
			return err
		}
		instance.DueBack = &dueBack
	}

	if err := h.repo.Create(ctx, instance); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, instance))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdateBookInstancePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	instance, err := h.repo.Retrieve(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.BookID != nil {
		instance.BookID = params.BookID
		columns = append(columns, "book_id")
	}
	if params.Imprint != nil {
		instance.Imprint = *params.Imprint
		columns = append(columns, "imprint")
	}
	if params.Status != nil {
		instance.Status = *params.Status
		columns = append(columns, "status")
	}
	if params.DueBack != nil {
		// empty string clears the due date
		if *params.DueBack == "" {
			instance.DueBack = nil
		} else {
			dueBack, err := parseDate("due_back", *params.DueBack)
			if err != nil {
				return err
			}
			instance.DueBack = &dueBack
		}
		columns = append(columns, "due_back")
	}
	if params.BorrowerID != nil {
		instance.BorrowerID = params.BorrowerID
		columns = append(columns, "borrower_id")
	}

	if err := h.repo.Update(ctx, instance, crud.UpdateOptions{Columns: columns}); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, instance))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.repo.Delete(ctx, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) borrow(c echo.Context) error {
	return h.transition(c, h.svc.Borrow)
}

func (h *handler) reserve(c echo.Context) error {
	return h.transition(c, h.svc.Reserve)
}

func (h *handler) returnInstance(c echo.Context) error {
	return h.transition(c, h.svc.Return)
}

func (h *handler) transition(c echo.Context, fn func(ctx context.Context, id string, user *models.User) (*models.BookInstance, error)) error {
	ctx := c.Request().Context()

	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Could not validate credentials")
	}

	instance, err := fn(ctx, c.Param("id"), user)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, instance))
}
