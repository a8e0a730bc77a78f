package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	ReadTimeout             time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout            time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`

	Store    Store
	Postgres Postgres
	Quiz     Quiz
	CORS     CORS
}

// Store selects the persistence engine.
type Store struct {
	Driver string `env:"STORE_DRIVER" envDefault:"postgres"`
	// Seed loads the standard categories into the memory store.
	Seed bool `env:"STORE_SEED" envDefault:"true"`
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host        string `env:"PG_HOST" envDefault:"localhost"`
	Port        int    `env:"PG_PORT" envDefault:"5432"`
	User        string `env:"PG_USER"`
	Password    string `env:"PG_PASSWORD"`
	Database    string `env:"PG_DATABASE"`
	SSLMode     string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns    int    `env:"PG_MAX_CONNS" envDefault:"10"`
	AutoMigrate bool   `env:"PG_AUTO_MIGRATE" envDefault:"false"`
}

// ConnString renders the keyword/value DSN understood by pgx.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode, p.MaxConns)
}

// Validate reports missing required connection settings.
func (p Postgres) Validate() error {
	switch {
	case p.Host == "":
		return fmt.Errorf("PG_HOST is required")
	case p.User == "":
		return fmt.Errorf("PG_USER is required")
	case p.Database == "":
		return fmt.Errorf("PG_DATABASE is required")
	}
	return nil
}

// Quiz tunes question selection.
type Quiz struct {
	// RandomSeed makes selection reproducible when non-zero.
	RandomSeed uint64 `env:"QUIZ_RANDOM_SEED" envDefault:"0"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,PUT,POST,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization,true"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.Store.Driver {
	case DriverPostgres:
		if err := cfg.Postgres.Validate(); err != nil {
			return nil, fmt.Errorf("postgres config: %w", err)
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", cfg.Store.Driver, DriverPostgres, DriverMemory)
	}
	return cfg, nil
}

// LoadPostgres parses only the Postgres block, for tools that need nothing else.
func LoadPostgres() (Postgres, error) {
	var pg Postgres
	if err := env.Parse(&pg); err != nil {
		return Postgres{}, fmt.Errorf("parse postgres config: %w", err)
	}
	if err := pg.Validate(); err != nil {
		return Postgres{}, err
	}
	return pg, nil
}
