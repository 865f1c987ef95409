package users

// ListUsersQuery represents the list query parameters.
type ListUsersQuery struct {
	Limit  int `query:"limit" default:"100" validate:"min=1,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// CreateUserPayload represents the registration request body.
type CreateUserPayload struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateSelfPayload represents the request body for a user editing their own
// account.
type UpdateSelfPayload struct {
	Username *string `json:"username" validate:"omitempty,required,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUserPayload represents the administrative update request body.
type UpdateUserPayload struct {
	Username    *string `json:"username" validate:"omitempty,required,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=254"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=72"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}
