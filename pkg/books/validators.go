package books

// ListBooksQuery represents the list query parameters. The genre and
// language filters are combined with AND when both are present.
type ListBooksQuery struct {
	Limit      int  `query:"limit" default:"100" validate:"min=1,max=500"`
	Offset     int  `query:"offset" validate:"min=0"`
	GenreID    *int `query:"genre_id" validate:"omitempty,min=1"`
	LanguageID *int `query:"language_id" validate:"omitempty,min=1"`
}

// CreateBookPayload represents the create request body.
type CreateBookPayload struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	AuthorID    *int   `json:"author_id" validate:"omitempty,min=1"`
	GenreID     *int   `json:"genre_id" validate:"omitempty,min=1"`
	LanguageID  *int   `json:"language_id" validate:"omitempty,min=1"`
}

// UpdateBookPayload represents the update request body.
type UpdateBookPayload struct {
	Title       *string `json:"title" validate:"omitempty,required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	AuthorID    *int    `json:"author_id" validate:"omitempty,min=1"`
	GenreID     *int    `json:"genre_id" validate:"omitempty,min=1"`
	LanguageID  *int    `json:"language_id" validate:"omitempty,min=1"`
}
