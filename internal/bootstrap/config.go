package bootstrap

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/Avishah123/hb-dashboard/internal/config"
)

// Flags holds command line overrides of the config file.
type Flags struct {
	ConfigPath    string
	EnvFile       string
	Driver        string
	PostgresDSN   string
	ClickhouseDSN string
	Migrate       bool
	LogLevel      string
	LogFormat     string
}

// Bind registers the shared flags on fs.
func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to YAML config file")
	fs.StringVar(&f.EnvFile, "env-file", ".env", "Path to .env file (ignored if missing)")
	fs.StringVar(&f.Driver, "driver", "", "Store driver: postgres, clickhouse or memory")
	fs.StringVar(&f.PostgresDSN, "postgres-dsn", "", "PostgreSQL connection string")
	fs.StringVar(&f.ClickhouseDSN, "clickhouse-dsn", "", "ClickHouse connection string")
	fs.BoolVar(&f.Migrate, "migrate", false, "Apply embedded migrations on startup")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFormat, "log-format", "", "Log format: json or console")
}

// Load reads the .env file and the config file, applies the flags that were
// set on fs and validates the result.
func (f *Flags) Load(fs *pflag.FlagSet) (*config.Config, error) {
	if err := config.LoadEnv(f.EnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadWithDefaults(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (f *Flags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("driver") {
		cfg.Store.Driver = f.Driver
	}
	if fs.Changed("postgres-dsn") {
		cfg.Store.Postgres.DSN = f.PostgresDSN
	}
	if fs.Changed("clickhouse-dsn") {
		cfg.Store.Clickhouse.DSN = f.ClickhouseDSN
	}
	if fs.Changed("migrate") {
		cfg.Store.Migrate = f.Migrate
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.LogFormat
	}
}
