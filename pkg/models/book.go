package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `bun:",nullzero" json:"title"`
	Description string    `json:"description"`
	AuthorID    *int      `json:"author_id"`
	GenreID     *int      `json:"genre_id"`
	LanguageID  *int      `json:"language_id"`

	// Relations
	Author    *Author         `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Genre     *Genre          `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
	Language  *Language       `bun:"rel:belongs-to,join:language_id=id" json:"language,omitempty"`
	Instances []*BookInstance `bun:"rel:has-many,join:id=book_id" json:"instances,omitempty"`
}
