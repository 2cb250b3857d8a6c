package config

import (
	"fmt"
	"net/url"

	"github.com/maxviazov/example-crud-service/internal/logger"
)

type Config struct {
	Server  ServerConfig        `mapstructure:"server"`
	Storage StorageConfig       `mapstructure:"storage"`
	Logger  logger.LoggerConfig `mapstructure:"logger"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StorageConfig selects the repository backend and carries the connection
// settings for whichever one is active. Backend "bun" drives the ORM
// implementation over any of the three dialects; backend "pgx" drives the
// raw-SQL postgres implementation.
type StorageConfig struct {
	Backend       string         `mapstructure:"backend"` // bun | pgx
	Driver        string         `mapstructure:"driver"`  // postgres | mysql | sqlite (bun backend only)
	DSN           string         `mapstructure:"dsn"`
	Debug         bool           `mapstructure:"debug"`
	Migrate       bool           `mapstructure:"migrate"`
	MigrationsDir string         `mapstructure:"migrationsDir"`
	Postgres      PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"maxConns"`
	MinConns          int32  `mapstructure:"minConns"`
	MaxConnLifetime   int    `mapstructure:"maxConnLifetime"`
	MaxConnIdleTime   int    `mapstructure:"maxConnIdleTime"`
	HealthCheckPeriod int    `mapstructure:"healthCheckPeriod"`
}

// DSN assembles the postgres connection string through url.URL so
// credentials are escaped correctly.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   p.DBName,
	}
	if p.User != "" || p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	q := u.Query()
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// MigrationDSN picks the connection string goose should use, depending on
// which backend is active.
func (s StorageConfig) MigrationDSN() string {
	if s.Backend == "pgx" {
		return s.Postgres.DSN()
	}
	return s.DSN
}
