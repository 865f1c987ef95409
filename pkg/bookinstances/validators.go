package bookinstances

import "github.com/pouya-gh/MyLibrary/pkg/models"

// ListBookInstancesQuery represents the list query parameters. An unknown
// status value is rejected before the query runs.
type ListBookInstancesQuery struct {
	Limit  int                        `query:"limit" default:"100" validate:"min=1,max=500"`
	Offset int                        `query:"offset" validate:"min=0"`
	Status *models.BookInstanceStatus `query:"status" validate:"omitempty,instance_status"`
}

// CreateBookInstancePayload represents the create request body. The status
// defaults to maintenance when omitted.
type CreateBookInstancePayload struct {
	BookID  *int                       `json:"book_id" validate:"omitempty,min=1"`
	Imprint string                     `json:"imprint" validate:"required,max=200"`
	Status  *models.BookInstanceStatus `json:"status" validate:"omitempty,instance_status"`
	DueBack *string                    `json:"due_back" validate:"omitempty,date"`
}

// UpdateBookInstancePayload represents the update request body. A present but
// empty due_back clears the date.
type UpdateBookInstancePayload struct {
	BookID     *int                       `json:"book_id" validate:"omitempty,min=1"`
	Imprint    *string                    `json:"imprint" validate:"omitempty,required,max=200"`
	Status     *models.BookInstanceStatus `json:"status" validate:"omitempty,instance_status"`
	DueBack    *string                    `json:"due_back" validate:"omitempty,date"`
	BorrowerID *int                       `json:"borrower_id" validate:"omitempty,min=1"`
}
