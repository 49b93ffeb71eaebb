package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultDriver          = DriverPostgres
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultFixtureDays     = 120
	DefaultHTTPAddr        = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultRequestTimeout  = 20 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultLookbackDays    = 7
	DefaultIndexThreshold  = 5.0
	DefaultStocksThreshold = 10.0
	DefaultMetricsPath     = "/metrics"
)

func (c *Config) applyDefaults() {
	// Store defaults
	if c.Store.Driver == "" {
		c.Store.Driver = DefaultDriver
	}
	applyPostgresDefaults(&c.Store.Postgres)
	if c.Store.Memory.FixtureDays == 0 {
		c.Store.Memory.FixtureDays = DefaultFixtureDays
	}

	// HTTP defaults
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultHTTPAddr
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = DefaultReadTimeout
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = DefaultWriteTimeout
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = DefaultIdleTimeout
	}
	if c.HTTP.RequestTimeout == 0 {
		c.HTTP.RequestTimeout = DefaultRequestTimeout
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}

	// Analysis defaults
	applyAnalysisDefaults(&c.Analysis.Index, DefaultIndexThreshold)
	applyAnalysisDefaults(&c.Analysis.Stocks, DefaultStocksThreshold)

	// Metrics defaults
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

func applyPostgresDefaults(db *PostgresConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}

func applyAnalysisDefaults(a *AnalysisDefaults, threshold float64) {
	if a.LookbackDays == 0 {
		a.LookbackDays = DefaultLookbackDays
	}
	if a.ThresholdPercent == 0 {
		a.ThresholdPercent = threshold
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
