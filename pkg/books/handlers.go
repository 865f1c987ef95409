package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/pouya-gh/MyLibrary/pkg/crud"
	"github.com/pouya-gh/MyLibrary/pkg/errcodes"
	"github.com/pouya-gh/MyLibrary/pkg/models"
	"github.com/uptrace/bun"
)

type handler struct {
	repo *crud.Repository[models.Book]
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.repo.List(ctx, crud.ListOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		Apply: func(q *bun.SelectQuery) *bun.SelectQuery {
			if params.GenreID != nil {
				q = q.Where("b.genre_id = ?", *params.GenreID)
			}
			if params.LanguageID != nil {
				q = q.Where("b.language_id = ?", *params.LanguageID)
			}
			return q
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.repo.Retrieve(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		Title:       params.Title,
		Description: params.Description,
		AuthorID:    params.AuthorID,
		GenreID:     params.GenreID,
		LanguageID:  params.LanguageID,
	}

	if err := h.repo.Create(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.repo.Retrieve(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Title != nil {
		book.Title = *params.Title
		columns = append(columns, "title")
	}
	if params.Description != nil {
		book.Description = *params.Description
		columns = append(columns, "description")
	}
	if params.AuthorID != nil {
		book.AuthorID = params.AuthorID
		columns = append(columns, "author_id")
	}
	if params.GenreID != nil {
		book.GenreID = params.GenreID
		columns = append(columns, "genre_id")
	}
	if params.LanguageID != nil {
		book.LanguageID = params.LanguageID
		columns = append(columns, "language_id")
	}

	if err := h.repo.Update(ctx, book, crud.UpdateOptions{Columns: columns}); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

// delete removes the book. Its instances go with it via the schema cascade.
func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
