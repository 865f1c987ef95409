package models

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// BookInstanceStatus is the lending status of a physical copy. Exactly four
// values exist; deserializing anything else fails.
type BookInstanceStatus string

const (
	StatusMaintenance BookInstanceStatus = "maintenance"
	StatusOnLoan      BookInstanceStatus = "on_loan"
	StatusAvailable   BookInstanceStatus = "available"
	StatusReserved    BookInstanceStatus = "reserved"
)

func (s BookInstanceStatus) Valid() bool {
	switch s {
	case StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved:
		return true
	}
	return false
}

func (s BookInstanceStatus) String() string {
	return string(s)
}

func (s *BookInstanceStatus) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.WithStack(err)
	}
	status := BookInstanceStatus(value)
	if !status.Valid() {
		return errors.Errorf("invalid book instance status: %q", value)
	}
	*s = status
	return nil
}

// ParseBookInstanceStatus converts a string into a status, failing on
// unrecognized values.
func ParseBookInstanceStatus(value string) (BookInstanceStatus, error) {
	status := BookInstanceStatus(value)
	if !status.Valid() {
		return "", errors.Errorf("invalid book instance status: %q", value)
	}
	return status, nil
}

// BookInstance is a single borrowable copy of a book, identified by a UUID.
type BookInstance struct {
	bun.BaseModel `bun:"table:book_instances,alias:bi"`

	ID         string             `bun:",pk" json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	BookID     *int               `json:"book_id"`
	Imprint    string             `json:"imprint"`
	Status     BookInstanceStatus `bun:",nullzero" json:"status"`
	DueBack    *time.Time         `json:"due_back,omitempty"`
	BorrowerID *int               `json:"borrower_id,omitempty"`

	// Relations
	Book     *Book `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Borrower *User `bun:"rel:belongs-to,join:borrower_id=id" json:"borrower,omitempty"`
}

// ReservationGrace is how far past due_back a reservation is still protected.
// A reservation more than one day overdue is forfeit and may be claimed by
// anyone.
const ReservationGrace = 24 * time.Hour

// CanAcquire reports whether userID may borrow or reserve this instance
// today. True when the copy is available, or when it is reserved by userID,
// or when its reservation has expired past the grace day.
func (bi *BookInstance) CanAcquire(userID int, today time.Time) bool {
	switch bi.Status {
	case StatusAvailable:
		return true
	case StatusReserved:
		if bi.BorrowerID != nil && *bi.BorrowerID == userID {
			return true
		}
		if bi.DueBack != nil && today.After(bi.DueBack.Add(ReservationGrace)) {
			return true
		}
	}
	return false
}
