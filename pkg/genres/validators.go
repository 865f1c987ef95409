package genres

// ListGenresQuery represents the list query parameters.
type ListGenresQuery struct {
	Limit  int `query:"limit" default:"100" validate:"min=1,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// CreateGenrePayload represents the create request body.
type CreateGenrePayload struct {
	Name string `json:"name" validate:"required,max=50"`
}

// UpdateGenrePayload represents the update request body.
type UpdateGenrePayload struct {
	Name *string `json:"name" validate:"omitempty,required,max=50"`
}
