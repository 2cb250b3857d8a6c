package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level          string `json:"level,omitempty" validate:"oneof=trace debug info warn error"`
	Format         string `json:"format,omitempty" validate:"oneof=json console"`
	TimeField      string `json:"timeField,omitempty"`
	TimeFormat     string `json:"timeFormat,omitempty"`
	ServiceName    string `json:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty"`
	Env            string `json:"env,omitempty" validate:"oneof=dev staging prod"`
	WithCaller     bool   `json:"withCaller,omitempty"`
}

func New(logg *LoggerConfig) (logger zerolog.Logger, err error) {
	logg.setDefaults()

	v := validator.New()
	if err = v.Struct(logg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	zerolog.TimestampFieldName = logg.TimeField
	zerolog.TimeFieldFormat = logg.TimeFormat

	var writer = os.Stdout
	base := zerolog.New(writer)
	if logg.Format == "console" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: logg.TimeFormat})
	}
	logger = base.With().
		Timestamp().
		Str("service", logg.ServiceName).
		Str("version", logg.ServiceVersion).
		Str("env", logg.Env).
		Logger()

	if logg.WithCaller {
		logger = logger.With().Caller().Logger()
	}

	level, err := zerolog.ParseLevel(logg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = time.RFC3339Nano
	}
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if c.ServiceName == "" {
		c.ServiceName = "example-crud-service"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.1"
	}
}
