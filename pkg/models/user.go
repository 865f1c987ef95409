package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `bun:",nullzero" json:"username"`
	Email        string    `bun:",nullzero" json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`

	// Relations
	BorrowedBookInstances []*BookInstance `bun:"rel:has-many,join:id=borrower_id" json:"borrowed_book_instances,omitempty"`
}

// Scopes returns the token scopes granted to this user at login time.
func (u *User) Scopes() []string {
	if u.IsSuperuser {
		return []string{ScopeSuper}
	}
	return []string{}
}

// ScopeSuper is the single elevated scope. It gates all catalog mutation
// outside of the lending transitions.
const ScopeSuper = "super"
