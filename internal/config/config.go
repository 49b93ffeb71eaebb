package config

import (
	"time"

	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// Store drivers.
const (
	DriverPostgres   = "postgres"
	DriverClickhouse = "clickhouse"
	DriverMemory     = "memory"
)

// Config is the root configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// StoreConfig selects and configures the market data store.
type StoreConfig struct {
	Driver     string           `yaml:"driver"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Clickhouse ClickhouseConfig `yaml:"clickhouse"`
	Memory     MemoryConfig     `yaml:"memory"`
	Migrate    bool             `yaml:"migrate"`
}

// PostgresConfig holds connection settings. DSN wins over the individual fields.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ClickhouseConfig holds the ClickHouse DSN.
type ClickhouseConfig struct {
	DSN string `yaml:"dsn"`
}

// MemoryConfig controls the fixture data loaded into the memory store.
type MemoryConfig struct {
	FixtureDays int    `yaml:"fixture_days"`
	FixtureEnd  string `yaml:"fixture_end"` // YYYY-MM-DD, empty means today
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// AnalysisConfig holds change analysis defaults per entity dataset.
type AnalysisConfig struct {
	Index  AnalysisDefaults `yaml:"index"`
	Stocks AnalysisDefaults `yaml:"stocks"`
}

// AnalysisDefaults are used when a request omits lookback or threshold.
type AnalysisDefaults struct {
	LookbackDays     int     `yaml:"lookback_days"`
	ThresholdPercent float64 `yaml:"threshold_percent"`
}

// For returns the defaults for kind. Non-entity datasets use the index defaults.
func (a AnalysisConfig) For(kind domain.DatasetKind) AnalysisDefaults {
	if kind == domain.DatasetStocks {
		return a.Stocks
	}
	return a.Index
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MetricsEnabled reports whether /metrics is served. Defaults to true.
func (m MetricsConfig) MetricsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}
