package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pouya-gh/MyLibrary/pkg/auth"
	"github.com/pouya-gh/MyLibrary/pkg/crud"
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

func newTestService(db *bun.DB) *service {
	return &service{repo: crud.NewRepository[models.User](db, "User")}
}

func TestServiceRegister(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	user, err := svc.register(ctx, &CreateUserPayload{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, auth.CheckPassword("password123", user.PasswordHash))
}

func TestServiceRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	_, err := svc.register(ctx, &CreateUserPayload{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.register(ctx, &CreateUserPayload{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "conflict", codeErr.Code)
}

func TestServiceUpdateSelf(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	user, err := svc.register(ctx, &CreateUserPayload{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	email := "new@example.com"
	inactive := false
	updated, err := svc.updateSelf(ctx, user, &UpdateSelfPayload{
		Email:    &email,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", updated.Email)
	assert.False(t, updated.IsActive)
	// self-update never touches the superuser flag
	assert.False(t, updated.IsSuperuser)
}

func TestServiceUpdate_PasswordAndSuperuser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	user, err := svc.register(ctx, &CreateUserPayload{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	password := "newpassword123"
	superuser := true
	updated, err := svc.update(ctx, user.ID, &UpdateUserPayload{
		Password:    &password,
		IsSuperuser: &superuser,
	})
	require.NoError(t, err)

	assert.True(t, updated.IsSuperuser)
	assert.True(t, auth.CheckPassword("newpassword123", updated.PasswordHash))
	assert.False(t, auth.CheckPassword("password123", updated.PasswordHash))
}
