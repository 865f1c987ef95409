package authors

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pouya-gh/MyLibrary/pkg/binder"
	"github.com/pouya-gh/MyLibrary/pkg/crud"
	"github.com/pouya-gh/MyLibrary/pkg/errcodes"
	"github.com/pouya-gh/MyLibrary/pkg/migrations"
	"github.com/pouya-gh/MyLibrary/pkg/models"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func newAuthorsTestContext(t *testing.T, method, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	var req *http.Request
	if payload == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandlerCreate_WithDates(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{repo: crud.NewRepository[models.Author](db, "Author")}

	payload := `{"first_name":"John","last_name":"Milton","date_of_birth":"1608-12-09","date_of_death":"1674-11-08"}`
	c, rr := newAuthorsTestContext(t, http.MethodPost, "/authors", payload)

	require.NoError(t, h.create(c))
	assert.Equal(t, http.StatusCreated, rr.Code)

	var author models.Author
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &author))
	assert.Equal(t, time.Date(1608, 12, 9, 0, 0, 0, 0, time.UTC), author.DateOfBirth)
	require.NotNil(t, author.DateOfDeath)
	assert.Equal(t, time.Date(1674, 11, 8, 0, 0, 0, 0, time.UTC), *author.DateOfDeath)
}

func TestHandlerCreate_InvalidDate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{repo: crud.NewRepository[models.Author](db, "Author")}

	payload := `{"first_name":"John","last_name":"Milton","date_of_birth":"09/12/1608"}`
	c, _ := newAuthorsTestContext(t, http.MethodPost, "/authors", payload)

	err := h.create(c)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
	assert.Contains(t, codeErr.Message, "YYYY-MM-DD")
}

func TestHandlerCreate_ImpossibleDate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := crud.NewRepository[models.Author](db, "Author")
	h := &handler{repo: repo}

	// matches the date format shape but isn't a real calendar date
	payload := `{"first_name":"John","last_name":"Milton","date_of_birth":"2026-00-10"}`
	c, _ := newAuthorsTestContext(t, http.MethodPost, "/authors", payload)

	err := h.create(c)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
	assert.Contains(t, codeErr.Message, "date_of_birth")

	// nothing was stored
	authors, err := repo.List(context.Background(), crud.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestHandlerUpdate_ImpossibleDeathDate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := crud.NewRepository[models.Author](db, "Author")
	h := &handler{repo: repo}
	ctx := context.Background()

	author := &models.Author{
		FirstName:   "John",
		LastName:    "Milton",
		DateOfBirth: time.Date(1608, 12, 9, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, author))

	c, _ := newAuthorsTestContext(t, http.MethodPatch, "/authors/1", `{"date_of_death":"1674-00-08"}`)
	c.SetPath("/authors/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.update(c)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)

	updated, err := repo.Retrieve(ctx, author.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.DateOfDeath)
}

func TestHandlerCreate_MissingBirthDate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{repo: crud.NewRepository[models.Author](db, "Author")}

	payload := `{"first_name":"John","last_name":"Milton"}`
	c, _ := newAuthorsTestContext(t, http.MethodPost, "/authors", payload)

	err := h.create(c)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
}

func TestHandlerUpdate_ClearsDateOfDeath(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := crud.NewRepository[models.Author](db, "Author")
	h := &handler{repo: repo}
	ctx := context.Background()

	death := time.Date(1674, 11, 8, 0, 0, 0, 0, time.UTC)
	author := &models.Author{
		FirstName:   "John",
		LastName:    "Milton",
		DateOfBirth: time.Date(1608, 12, 9, 0, 0, 0, 0, time.UTC),
		DateOfDeath: &death,
	}
	require.NoError(t, repo.Create(ctx, author))

	c, rr := newAuthorsTestContext(t, http.MethodPatch, "/authors/1", `{"date_of_death":""}`)
	c.SetPath("/authors/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.update(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	updated, err := repo.Retrieve(ctx, author.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.DateOfDeath)
}
