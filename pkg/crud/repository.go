// Package crud provides a generic bun-backed repository used by every
// catalog entity. It replaces the per-entity get/list/create/update/delete
// duplication with one parameterized implementation.
package crud

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pouya-gh/MyLibrary/pkg/errcodes"
	"github.com/uptrace/bun"
)

type ListOptions struct {
	Limit  *int
	Offset *int

	// Apply customizes the select query, e.g. for equality filters.
	Apply func(q *bun.SelectQuery) *bun.SelectQuery
}

type UpdateOptions struct {
	Columns []string
}

// Repository is a generic persistence collaborator for a single entity type.
// The resource name is used in not-found and conflict messages.
type Repository[T any] struct {
	db       *bun.DB
	resource string
}

func NewRepository[T any](db *bun.DB, resource string) *Repository[T] {
	return &Repository[T]{db: db, resource: resource}
}

func (r *Repository[T]) DB() *bun.DB {
	return r.db
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	now := time.Now()
	_, err := r.db.
		NewInsert().
		Model(entity).
		Value("created_at", "?", now).
		Value("updated_at", "?", now).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return errcodes.Conflict(r.resource)
		}
		return errors.WithStack(err)
	}
	return nil
}

func (r *Repository[T]) Retrieve(ctx context.Context, id any) (*T, error) {
	entity := new(T)

	err := r.db.
		NewSelect().
		Model(entity).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound(r.resource)
		}
		return nil, errors.WithStack(err)
	}

	return entity, nil
}

func (r *Repository[T]) List(ctx context.Context, opts ListOptions) ([]*T, error) {
	var entities []*T

	q := r.db.
		NewSelect().
		Model(&entities).
		Order("id ASC")

	if opts.Apply != nil {
		q = opts.Apply(q)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return entities, nil
}

func (r *Repository[T]) Update(ctx context.Context, entity *T, opts UpdateOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	res, err := r.db.
		NewUpdate().
		Model(entity).
		Column(opts.Columns...).
		Value("updated_at", "?", time.Now()).
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return errcodes.Conflict(r.resource)
		}
		return errors.WithStack(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errcodes.NotFound(r.resource)
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	res, err := r.db.
		NewDelete().
		Model((*T)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errcodes.NotFound(r.resource)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. Both mattn/go-sqlite3 and modernc.org/sqlite include this text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
