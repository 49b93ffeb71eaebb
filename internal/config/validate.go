package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/date"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if err := c.Store.Postgres.validate("store.postgres"); err != nil {
			return err
		}
	case DriverClickhouse:
		if c.Store.Clickhouse.DSN == "" {
			return errors.New("store.clickhouse.dsn is required")
		}
	case DriverMemory:
		if c.Store.Memory.FixtureDays < 1 {
			return errors.New("store.memory.fixture_days must be >= 1")
		}
		if c.Store.Memory.FixtureEnd != "" {
			if _, err := date.Parse(c.Store.Memory.FixtureEnd); err != nil {
				return fmt.Errorf("store.memory.fixture_end: %w", err)
			}
		}
	default:
		return fmt.Errorf("store.driver must be one of postgres, clickhouse, memory, got %q", c.Store.Driver)
	}

	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 || c.HTTP.IdleTimeout < 0 || c.HTTP.RequestTimeout < 0 {
		return errors.New("http timeouts must be >= 0")
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	if err := c.Analysis.Index.validate("analysis.index"); err != nil {
		return err
	}
	if err := c.Analysis.Stocks.validate("analysis.stocks"); err != nil {
		return err
	}

	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}

	return nil
}

func (db *PostgresConfig) validate(prefix string) error {
	if db.DSN == "" {
		if db.Host == "" {
			return fmt.Errorf("%s.host is required", prefix)
		}
		if db.Name == "" {
			return fmt.Errorf("%s.name is required", prefix)
		}
		if db.User == "" {
			return fmt.Errorf("%s.user is required", prefix)
		}
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

func (a *AnalysisDefaults) validate(prefix string) error {
	if a.LookbackDays < change.MinLookbackDays || a.LookbackDays > change.MaxLookbackDays {
		return fmt.Errorf("%s.lookback_days must be between %d and %d, got %d",
			prefix, change.MinLookbackDays, change.MaxLookbackDays, a.LookbackDays)
	}
	if a.ThresholdPercent < change.MinThreshold || a.ThresholdPercent > change.MaxThreshold {
		return fmt.Errorf("%s.threshold_percent must be between %g and %g, got %g",
			prefix, change.MinThreshold, change.MaxThreshold, a.ThresholdPercent)
	}
	return nil
}
