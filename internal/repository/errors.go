package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maxviazov/example-crud-service/internal/core"
)

// MapPgError translates common Postgres error codes to core failure kinds.
// I only map what I expect to handle explicitly at higher layers; everything
// else passes through and surfaces as Unexpected at the boundary.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return core.NewConflict("example already exists")
		case pgerrcode.ForeignKeyViolation:
			return core.NewConflict("example is referenced by another record")
		}
	}
	return err
}
