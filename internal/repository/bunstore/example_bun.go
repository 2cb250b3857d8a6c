// Package bunstore implements the example repository on the bun ORM. It runs
// over postgres, mysql or sqlite through the storage factory; semantics are
// pinned to the raw-SQL backend by the shared contract suite.
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/internal/model"
	"github.com/maxviazov/example-crud-service/internal/repository"
	"github.com/uptrace/bun"
)

type exampleRepository struct{ db *bun.DB }

func NewExampleRepository(db *bun.DB) repository.ExampleRepository {
	return &exampleRepository{db: db}
}

func (r *exampleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Example, error) {
	var e model.Example
	err := r.db.NewSelect().Model(&e).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Absence is the success case with no match.
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *exampleRepository) List(ctx context.Context, page core.Pagination, q repository.Query) (repository.PageResult[model.Example], error) {
	var res repository.PageResult[model.Example]
	items := make([]model.Example, 0, page.PageSize())

	query := r.db.NewSelect().Model(&items)
	query = applyFilter(query, q.Filter)

	// Count reflects the filtered set, computed independently of the slice.
	total, err := query.Count(ctx)
	if err != nil {
		return res, err
	}

	err = query.
		OrderExpr(orderExpr(q.Order)).
		Limit(page.PageSize()).
		Offset(page.Offset()).
		Scan(ctx)
	if err != nil {
		return res, err
	}

	res.Items = items
	res.Total = total
	return res, nil
}

func (r *exampleRepository) Add(ctx context.Context, e model.Example) (model.Example, error) {
	if e.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		e.ID = id
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NewInsert().Model(&e).Exec(ctx); err != nil {
		return model.Example{}, err
	}
	return e, nil
}

func (r *exampleRepository) Update(ctx context.Context, e model.Example) error {
	out, err := r.db.NewUpdate().
		Model(&e).
		Column("name", "description", "date", "location", "latitude", "longitude", "difficulty").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.NewNotFound(fmt.Sprintf("Example not found. Id=%s", e.ID))
	}
	return nil
}

func (r *exampleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Idempotent: zero affected rows is still success.
	_, err := r.db.NewDelete().Model((*model.Example)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *exampleRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.db.NewSelect().Model((*model.Example)(nil)).Where("id = ?", id).Exists(ctx)
}

func applyFilter(q *bun.SelectQuery, f repository.Filter) *bun.SelectQuery {
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.NameContains != "" {
		q = q.Where("lower(name) LIKE lower(?)", "%"+f.NameContains+"%")
	}
	if f.ActiveOnly {
		q = q.Where("active")
	}
	return q
}

// orderExpr always appends the primary key so the ordering is total and
// pages stay deterministic; "no explicit order" is never left store-defined.
func orderExpr(o *repository.Order) string {
	if o == nil {
		return "created_at DESC, id"
	}
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id", o.Column, dir)
}

var _ repository.ExampleRepository = (*exampleRepository)(nil)
