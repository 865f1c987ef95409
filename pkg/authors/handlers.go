package authors

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/pouya-gh/MyLibrary/pkg/crud"
	"github.com/pouya-gh/MyLibrary/pkg/errcodes"
	"github.com/pouya-gh/MyLibrary/pkg/models"
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
	repo *crud.Repository[models.Author]
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListAuthorsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	authors, err := h.repo.List(ctx, crud.ListOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, authors))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	author, err := h.repo.Retrieve(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	dateOfBirth, err := parseDate("date_of_birth", params.DateOfBirth)
	if err != nil {
		return err
	}
	author := &models.Author{
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		DateOfBirth: dateOfBirth,
	}
	if params.DateOfDeath != nil && *params.DateOfDeath != "" {
		dateOfDeath, err := parseDate("date_of_death", *params.DateOfDeath)
		if err != nil {
			return err
		}
		author.DateOfDeath = &dateOfDeath
	}

	if err := h.repo.Create(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, author))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	params := UpdateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author, err := h.repo.Retrieve(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.FirstName != nil {
		author.FirstName = *params.FirstName
		columns = append(columns, "first_name")
	}
	if params.LastName != nil {
		author.LastName = *params.LastName
		columns = append(columns, "last_name")
	}
	if params.DateOfBirth != nil {
		dateOfBirth, err := parseDate("date_of_birth", *params.DateOfBirth)
		if err != nil {
			return err
		}
		author.DateOfBirth = dateOfBirth
		columns = append(columns, "date_of_birth")
	}
	if params.DateOfDeath != nil {
		// empty string clears the date of death
		if *params.DateOfDeath == "" {
			author.DateOfDeath = nil
		} else {
			dateOfDeath, err := parseDate("date_of_death", *params.DateOfDeath)
			if err != nil {
				return err
			}
			author.DateOfDeath = &dateOfDeath
		}
		columns = append(columns, "date_of_death")
	}

	if err := h.repo.Update(ctx, author, crud.UpdateOptions{Columns: columns}); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

// delete removes the author. The schema cascades to the author's books and
// transitively to their instances.
func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
