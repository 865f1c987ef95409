package crud

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pouya-gh/MyLibrary/pkg/errcodes"
	"github.com/pouya-gh/MyLibrary/pkg/migrations"
	"github.com/pouya-gh/MyLibrary/pkg/models"
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

func TestRepositoryCreateAndRetrieve(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository[models.Genre](db, "Genre")
	ctx := context.Background()

	genre := &models.Genre{Name: "Science Fiction"}
	require.NoError(t, repo.Create(ctx, genre))
	assert.NotZero(t, genre.ID)
	assert.False(t, genre.CreatedAt.IsZero())

	found, err := repo.Retrieve(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", found.Name)
}

func TestRepositoryCreate_Conflict(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository[models.Genre](db, "Genre")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Genre{Name: "Fantasy"}))

	err := repo.Create(ctx, &models.Genre{Name: "Fantasy"})

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "conflict", codeErr.Code)
	assert.Equal(t, 400, codeErr.HTTPCode)
}

func TestRepositoryRetrieve_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository[models.Genre](db, "Genre")

	_, err := repo.Retrieve(context.Background(), 999)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
	assert.Equal(t, 404, codeErr.HTTPCode)
	assert.Equal(t, "Genre not found.", codeErr.Message)
}

func TestRepositoryList(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository[models.Genre](db, "Genre")
	ctx := context.Background()

	for _, name := range []string{"Fantasy", "Horror", "Poetry", "Romance"} {
		require.NoError(t, repo.Create(ctx, &models.Genre{Name: name}))
	}

	all, err := repo.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	limit := 2
	offset := 1
	page, err := repo.List(ctx, ListOptions{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Horror", page[0].Name)
	assert.Equal(t, "Poetry", page[1].Name)

	filtered, err := repo.List(ctx, ListOptions{
		Apply: func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("g.name = ?", "Horror")
		},
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Horror", filtered[0].Name)
}

func TestRepositoryUpdate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository[models.Genre](db, "Genre")
	ctx := context.Background()

	genre := &models.Genre{Name: "Fantsy"}
	require.NoError(t, repo.Create(ctx, genre))

	genre.Name = "Fantasy"
	require.NoError(t, repo.Update(ctx, genre, UpdateOptions{Columns: []string{"name"}}))

	found, err := repo.Retrieve(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", found.Name)
}

func TestRepositoryUpdate_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository[models.Genre](db, "Genre")

	missing := &models.Genre{ID: 999, Name: "Ghost"}
	err := repo.Update(context.Background(), missing, UpdateOptions{Columns: []string{"name"}})

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository[models.Genre](db, "Genre")
	ctx := context.Background()

	genre := &models.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(ctx, genre))
	require.NoError(t, repo.Delete(ctx, genre.ID))

	_, err := repo.Retrieve(ctx, genre.ID)
	assert.Error(t, err)

	err = repo.Delete(ctx, genre.ID)
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
}
