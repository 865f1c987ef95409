package authors

// ListAuthorsQuery represents the list query parameters.
type ListAuthorsQuery struct {
	Limit  int `query:"limit" default:"100" validate:"min=1,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// CreateAuthorPayload represents the create request body.
type CreateAuthorPayload struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	DateOfBirth string  `json:"date_of_birth" validate:"required,date,ne="`
	DateOfDeath *string `json:"date_of_death" validate:"omitempty,date"`
}

// UpdateAuthorPayload represents the update request body. A present but
// empty date_of_death clears the value.
type UpdateAuthorPayload struct {
	FirstName   *string `json:"first_name" validate:"omitempty,required,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,required,max=100"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,date,ne="`
	DateOfDeath *string `json:"date_of_death" validate:"omitempty,date"`
}
