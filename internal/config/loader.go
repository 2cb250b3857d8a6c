package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.backend", "pgx")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("storage.migrationsDir", "migrations/goose_sql")
	// Secrets are expected from the environment; registering the keys makes
	// AutomaticEnv pick them up even when the file omits them.
	v.SetDefault("storage.postgres.user", "")
	v.SetDefault("storage.postgres.password", "")

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Storage.Backend != "bun" && config.Storage.Backend != "pgx" {
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}
	return &config, nil
}
