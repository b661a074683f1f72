// Package app wires configuration into the database, redis, lock and engine
// shared by the server, the scheduler and the operator CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/pledge-engine/internal/config"
	"github.com/segyhp/pledge-engine/internal/lock"
	"github.com/segyhp/pledge-engine/internal/repository"
	"github.com/segyhp/pledge-engine/internal/service"
)

// Runtime holds the live collaborators of one process.
type Runtime struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      *sqlx.DB
	Redis   *redis.Client // nil with the local lock backend
	Locker  lock.Locker
	Service *service.PledgeService
}

// Build connects to postgres (and redis when it backs the pledge lock) and assembles the engine.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	rt := &Runtime{Config: cfg, Logger: logger, DB: db}

	if cfg.Lock.Backend == config.LockBackendRedis {
		rt.Redis = NewRedis(cfg)
		if err := rt.Redis.Ping(ctx).Err(); err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	}
	rt.Locker = NewLocker(cfg, rt.Redis, logger)

	rt.Service = service.NewPledgeService(repository.NewPostgresGateway(db), rt.Locker, cfg, logger)

	return rt, nil
}

// Close releases the database and redis connections.
func (rt *Runtime) Close() {
	if rt.Redis != nil {
		if err := rt.Redis.Close(); err != nil {
			rt.Logger.Warn("close redis", "error", err)
		}
	}
	if rt.DB != nil {
		if err := rt.DB.Close(); err != nil {
			rt.Logger.Warn("close database", "error", err)
		}
	}
}

func OpenDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// NewLocker picks the pledge lock implementation. A nil client always yields the local lock.
func NewLocker(cfg *config.Config, client *redis.Client, logger *slog.Logger) lock.Locker {
	if cfg.Lock.Backend == config.LockBackendRedis && client != nil {
		return lock.NewRedis(client, cfg.Lock.TTL, cfg.Lock.Wait).WithLogger(logger)
	}
	return lock.NewLocal()
}
