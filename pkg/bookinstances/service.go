package bookinstances

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/pouya-gh/MyLibrary/pkg/errcodes"
	"github.com/pouya-gh/MyLibrary/pkg/models"
	"github.com/uptrace/bun"
)

const (
	// LoanPeriod is how long a borrowed copy is out before it is due back.
	LoanPeriod = 14 * 24 * time.Hour
	// ReservePeriod is how long a reservation holds the copy.
	ReservePeriod = 24 * time.Hour
)

// Service owns the lending transitions. Every transition runs in a single
// transaction and re-checks the instance state in the UPDATE's WHERE clause,
// so two concurrent borrowers cannot both win the same copy.
type Service struct {
	db *bun.DB

	// now is swappable in tests.
	now func() time.Time
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Borrow checks the instance out to user. The copy must be acquirable: either
// available, or reserved by the user, or carrying a forfeited reservation.
func (s *Service) Borrow(ctx context.Context, id string, user *models.User) (*models.BookInstance, error) {
	due := s.now().Add(LoanPeriod)
	return s.acquire(ctx, id, user, models.StatusOnLoan, due)
}

// Reserve holds the instance for user for one day under the same eligibility
// predicate as Borrow.
func (s *Service) Reserve(ctx context.Context, id string, user *models.User) (*models.BookInstance, error) {
	due := s.now().Add(ReservePeriod)
	return s.acquire(ctx, id, user, models.StatusReserved, due)
}

func (s *Service) acquire(ctx context.Context, id string, user *models.User, target models.BookInstanceStatus, due time.Time) (*models.BookInstance, error) {
	instance := &models.BookInstance{}

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := fetchInstance(ctx, tx, id, instance); err != nil {
			return err
		}

		if !instance.CanAcquire(user.ID, s.now()) {
			return errcodes.InstanceUnavailable()
		}

		q := tx.NewUpdate().
			Model(instance).
			Set("status = ?", target).
			Set("due_back = ?", due).
			Set("borrower_id = ?", user.ID).
			Set("updated_at = ?", s.now()).
			WherePK().
			Where("status = ?", instance.Status)
		// guard the reservation holder too, so a forfeited reservation
		// cannot be claimed twice
		if instance.BorrowerID != nil {
			q = q.Where("borrower_id = ?", *instance.BorrowerID)
		} else {
			q = q.Where("borrower_id IS NULL")
		}

		res, err := q.Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errcodes.InstanceUnavailable()
		}

		instance.Status = target
		instance.DueBack = &due
		instance.BorrowerID = &user.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return instance, nil
}

// Return hands the copy back. Only the current borrower of an on-loan copy
// may return it; the copy becomes available with its loan fields cleared.
func (s *Service) Return(ctx context.Context, id string, user *models.User) (*models.BookInstance, error) {
	instance := &models.BookInstance{}

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := fetchInstance(ctx, tx, id, instance); err != nil {
			return err
		}

		if instance.Status != models.StatusOnLoan || instance.BorrowerID == nil || *instance.BorrowerID != user.ID {
			return errcodes.NotYourLoan()
		}

		res, err := tx.NewUpdate().
			Model(instance).
			Set("status = ?", models.StatusAvailable).
			Set("due_back = NULL").
			Set("borrower_id = NULL").
			Set("updated_at = ?", s.now()).
			WherePK().
			Where("status = ?", models.StatusOnLoan).
			Where("borrower_id = ?", user.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errcodes.NotYourLoan()
		}

		instance.Status = models.StatusAvailable
		instance.DueBack = nil
		instance.BorrowerID = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	return instance, nil
}

func fetchInstance(ctx context.Context, tx bun.Tx, id string, instance *models.BookInstance) error {
	err := tx.NewSelect().
		Model(instance).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Book instance")
		}
		return errors.WithStack(err)
	}
	return nil
}
