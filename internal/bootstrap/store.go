// Package bootstrap wires configured components for the binaries.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Avishah123/hb-dashboard/internal/config"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/storage"
	chstore "github.com/Avishah123/hb-dashboard/internal/storage/clickhouse"
	"github.com/Avishah123/hb-dashboard/internal/storage/memory"
	"github.com/Avishah123/hb-dashboard/internal/storage/migrations"
	pgstore "github.com/Avishah123/hb-dashboard/internal/storage/postgres"
)

// OpenStore opens the configured store. The returned cleanup closes it.
// The memory driver is seeded with fixture data.
func OpenStore(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (storage.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return openMemory(ctx, cfg.Memory, log)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, log)
	case config.DriverClickhouse:
		return openClickhouse(ctx, cfg, log)
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func openMemory(ctx context.Context, mc config.MemoryConfig, log zerolog.Logger) (storage.Store, func(), error) {
	end, err := FixtureEnd(mc, time.Now)
	if err != nil {
		return nil, nil, err
	}
	store := memory.NewStore()
	if err := memory.LoadFixtures(ctx, store, end, mc.FixtureDays); err != nil {
		return nil, nil, err
	}
	log.Info().
		Str("driver", config.DriverMemory).
		Str("fixture_end", end.String()).
		Int("fixture_days", mc.FixtureDays).
		Msg("memory store seeded with fixtures")
	return store, func() {}, nil
}

func openPostgres(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (storage.Store, func(), error) {
	pool, err := pgstore.NewPoolWithConfig(ctx, cfg.Postgres.ConnString(), pgstore.PoolConfig{
		MaxConns: int32(cfg.Postgres.MaxConns),
		MinConns: int32(cfg.Postgres.MinConns),
	})
	if err != nil {
		return nil, nil, err
	}
	if cfg.Migrate {
		applied, err := migrations.RunPostgresMigrations(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		log.Info().Strs("applied", applied).Msg("postgres migrations applied")
	}
	log.Info().Str("driver", config.DriverPostgres).Msg("connected to postgres")
	return pgstore.NewMarketStore(pool), pool.Close, nil
}

func openClickhouse(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (storage.Store, func(), error) {
	var (
		conn *chstore.Conn
		err  error
	)
	if cfg.Migrate {
		conn, err = migrations.RunClickhouseMigrations(ctx, cfg.Clickhouse.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
		}
		log.Info().Msg("clickhouse migrations applied")
	} else if conn, err = chstore.NewConn(ctx, cfg.Clickhouse.DSN); err != nil {
		return nil, nil, err
	}
	log.Info().Str("driver", config.DriverClickhouse).Msg("connected to clickhouse")
	cleanup := func() {
		if err := conn.Close(); err != nil {
			log.Warn().Err(err).Msg("close clickhouse connection")
		}
	}
	return chstore.NewMarketStore(conn), cleanup, nil
}

// FixtureEnd returns the configured fixture end date, today when unset.
func FixtureEnd(mc config.MemoryConfig, now func() time.Time) (date.Date, error) {
	if mc.FixtureEnd == "" {
		return date.FromTime(now()), nil
	}
	d, err := date.Parse(mc.FixtureEnd)
	if err != nil {
		return date.Date{}, fmt.Errorf("store.memory.fixture_end: %w", err)
	}
	return d, nil
}
