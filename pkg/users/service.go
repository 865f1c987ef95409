package users

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pouya-gh/MyLibrary/pkg/auth"
	"github.com/pouya-gh/MyLibrary/pkg/crud"
	"github.com/pouya-gh/MyLibrary/pkg/models"
)

type service struct {
	repo *crud.Repository[models.User]
}

// register hashes the password and stores the new account. Accounts start
// active and without the superuser flag regardless of the payload.
func (s *service) register(ctx context.Context, params *CreateUserPayload) (*models.User, error) {
	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	user := &models.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  false,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// updateSelf applies the fields a user may change on their own account. The
// superuser flag is deliberately out of reach here.
func (s *service) updateSelf(ctx context.Context, user *models.User, params *UpdateSelfPayload) (*models.User, error) {
	columns := []string{}
	if params.Username != nil {
		user.Username = *params.Username
		columns = append(columns, "username")
	}
	if params.Email != nil {
		user.Email = *params.Email
		columns = append(columns, "email")
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
		columns = append(columns, "is_active")
	}

	if err := s.repo.Update(ctx, user, crud.UpdateOptions{Columns: columns}); err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// update applies an administrative update, which may also change the
// password and the superuser flag.
func (s *service) update(ctx context.Context, id int, params *UpdateUserPayload) (*models.User, error) {
	user, err := s.repo.Retrieve(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	columns := []string{}
	if params.Username != nil {
		user.Username = *params.Username
		columns = append(columns, "username")
	}
	if params.Email != nil {
		user.Email = *params.Email
		columns = append(columns, "email")
	}
	if params.Password != nil {
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		user.PasswordHash = hash
		columns = append(columns, "password_hash")
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
		columns = append(columns, "is_active")
	}
	if params.IsSuperuser != nil {
		user.IsSuperuser = *params.IsSuperuser
		columns = append(columns, "is_superuser")
	}

	if err := s.repo.Update(ctx, user, crud.UpdateOptions{Columns: columns}); err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}
