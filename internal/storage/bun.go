// Package storage opens and tunes the database handles used by the
// repository implementations: a bun.DB for the ORM backend and a pgx pool
// for the raw-SQL backend.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/maxviazov/example-crud-service/internal/config"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// OpenBun builds a bun.DB for the configured driver. The dialect switch is
// the single place driver names are interpreted; repositories never see it.
func OpenBun(cfg *config.StorageConfig, logger zerolog.Logger) (*bun.DB, error) {
	var (
		sqldb *sql.DB
		err   error
		db    *bun.DB
	)
	switch cfg.Driver {
	case "postgres":
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	case "mysql":
		sqldb, err = sql.Open("mysql", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db = bun.NewDB(sqldb, mysqldialect.New())
	case "sqlite":
		sqldb, err = sql.Open(sqliteshim.ShimName, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// A single write connection keeps in-memory databases alive and
		// avoids SQLITE_BUSY under the shared handle.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	logger.Info().Str("driver", cfg.Driver).Msg("bun storage opened")
	return db, nil
}
