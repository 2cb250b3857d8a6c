// Package postgres implements the example repository with hand-written
// parameterized SQL over a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/internal/model"
	"github.com/maxviazov/example-crud-service/internal/repository"
)

const exampleColumns = `id, name, description, date, location, latitude, longitude, difficulty, active, created_at`

type exampleRepository struct{ pool *pgxpool.Pool }

func NewExampleRepository(pool *pgxpool.Pool) repository.ExampleRepository {
	return &exampleRepository{pool: pool}
}

func (r *exampleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Example, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx,
		`SELECT `+exampleColumns+` FROM examples WHERE id = $1`, id,
	)
	out, err := scanExample(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absence is the success case with no match.
			return nil, nil
		}
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

// List issues two statements: one for the page slice and one for the total
// count of the filtered set. They run without a shared transaction, so under
// concurrent writes the count can drift from the page by a row or two. That
// inconsistency is an accepted product decision, not a bug to patch here.
func (r *exampleRepository) List(ctx context.Context, page core.Pagination, q repository.Query) (repository.PageResult[model.Example], error) {
	var res repository.PageResult[model.Example]
	if err := ensurePool(r.pool); err != nil {
		return res, err
	}

	where, args := buildWhere(q.Filter)
	order := buildOrder(q.Order)

	pageSQL := fmt.Sprintf(
		`SELECT %s FROM examples %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		exampleColumns, where, order, len(args)+1, len(args)+2,
	)
	rows, err := r.pool.Query(ctx, pageSQL, append(args, page.PageSize(), page.Offset())...)
	if err != nil {
		return res, repository.MapPgError(err)
	}
	defer rows.Close()

	res.Items = make([]model.Example, 0, page.PageSize())
	for rows.Next() {
		e, err := scanExample(rows)
		if err != nil {
			return repository.PageResult[model.Example]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, *e)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Example]{}, repository.MapPgError(err)
	}

	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM examples %s`, where)
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&res.Total); err != nil {
		return repository.PageResult[model.Example]{}, repository.MapPgError(err)
	}
	return res, nil
}

func (r *exampleRepository) Add(ctx context.Context, e model.Example) (model.Example, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Example{}, err
	}
	assignIdentity(&e)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO examples (`+exampleColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.Name, e.Description, e.Date, e.Location,
		e.Latitude, e.Longitude, e.Difficulty, e.Active, e.CreatedAt,
	)
	if err != nil {
		return model.Example{}, repository.MapPgError(err)
	}
	return e, nil
}

func (r *exampleRepository) Update(ctx context.Context, e model.Example) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE examples
		 SET name = $2, description = $3, date = $4, location = $5,
		     latitude = $6, longitude = $7, difficulty = $8
		 WHERE id = $1`,
		e.ID, e.Name, e.Description, e.Date, e.Location,
		e.Latitude, e.Longitude, e.Difficulty,
	)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return core.NewNotFound(fmt.Sprintf("Example not found. Id=%s", e.ID))
	}
	return nil
}

func (r *exampleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	// Idempotent: zero affected rows is still success.
	_, err := r.pool.Exec(ctx, `DELETE FROM examples WHERE id = $1`, id)
	return repository.MapPgError(err)
}

func (r *exampleRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM examples WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

// buildWhere renders the declarative filter as a WHERE clause with numbered
// placeholders. Values only ever travel as bound parameters.
func buildWhere(f repository.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Difficulty != "" {
		args = append(args, f.Difficulty)
		conds = append(conds, fmt.Sprintf("difficulty = $%d", len(args)))
	}
	if f.Location != "" {
		args = append(args, f.Location)
		conds = append(conds, fmt.Sprintf("location = $%d", len(args)))
	}
	if f.NameContains != "" {
		args = append(args, "%"+f.NameContains+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.ActiveOnly {
		conds = append(conds, "active")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// buildOrder renders the ordering with the primary key as tie-breaker so
// pages are stable across repeated calls. Columns come from the whitelist
// validated upstream; nothing user-controlled is interpolated.
func buildOrder(o *repository.Order) string {
	if o == nil {
		return "created_at DESC, id"
	}
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id", o.Column, dir)
}

func assignIdentity(e *model.Example) {
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
}

func scanExample(row pgx.Row) (*model.Example, error) {
	var e model.Example
	if err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Date, &e.Location,
		&e.Latitude, &e.Longitude, &e.Difficulty, &e.Active, &e.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// helper to assert we didn't accidentally nil the pool
func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}

var _ repository.ExampleRepository = (*exampleRepository)(nil)
