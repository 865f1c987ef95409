package languages

// ListLanguagesQuery represents the list query parameters.
type ListLanguagesQuery struct {
	Limit  int `query:"limit" default:"100" validate:"min=1,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// CreateLanguagePayload represents the create request body.
type CreateLanguagePayload struct {
	Name string `json:"name" validate:"required,max=50"`
}

// UpdateLanguagePayload represents the update request body.
type UpdateLanguagePayload struct {
	Name *string `json:"name" validate:"omitempty,required,max=50"`
}
