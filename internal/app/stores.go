package app

import (
	"context"
	"fmt"

	"github.com/dimashiii/EzySubs-App/internal/config"
	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/domain/lineup"
	"github.com/dimashiii/EzySubs-App/internal/domain/player"
	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
	cacherepo "github.com/dimashiii/EzySubs-App/internal/infrastructure/repository/cache"
	"github.com/dimashiii/EzySubs-App/internal/infrastructure/repository/memory"
	"github.com/dimashiii/EzySubs-App/internal/infrastructure/repository/postgres"
	redisrepo "github.com/dimashiii/EzySubs-App/internal/infrastructure/repository/redis"
	basecache "github.com/dimashiii/EzySubs-App/internal/platform/cache"
	"github.com/dimashiii/EzySubs-App/internal/platform/logging"
	goredis "github.com/redis/go-redis/v9"
)

type stores struct {
	players   player.Repository
	lineups   lineup.Repository
	settings  settings.Repository
	snapshots rotation.SnapshotRepository
	history   history.Repository
	closers   []func() error
}

func (s *stores) close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// LoadRoster reads ROSTER_FILE, falling back to the built-in seed roster.
func LoadRoster(cfg config.Config) (memory.RosterFile, error) {
	if cfg.RosterFile == "" {
		return memory.RosterFile{Players: memory.SeedPlayers()}, nil
	}
	return memory.LoadRosterFile(cfg.RosterFile)
}

func buildStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (*stores, error) {
	roster, err := LoadRoster(cfg)
	if err != nil {
		return nil, err
	}

	out := &stores{}
	switch cfg.StoreBackend {
	case config.StorePostgres:
		if err := out.usePostgres(ctx, cfg, roster); err != nil {
			_ = out.close()
			return nil, err
		}
	case config.StoreRedis:
		if err := out.useRedis(ctx, cfg, roster, logger); err != nil {
			_ = out.close()
			return nil, err
		}
	default:
		if err := out.useMemory(ctx, roster); err != nil {
			return nil, err
		}
	}

	if cfg.CacheEnabled && cfg.StoreBackend != config.StoreMemory {
		store := basecache.NewStore(cfg.CacheTTL)
		out.players = cacherepo.NewPlayerRepository(out.players, store)
		out.lineups = cacherepo.NewLineupRepository(out.lineups, store)
		out.settings = cacherepo.NewSettingsRepository(out.settings, store)
	}

	logger.Info("stores ready",
		"backend", cfg.StoreBackend,
		"cache_enabled", cfg.CacheEnabled && cfg.StoreBackend != config.StoreMemory,
		"roster_size", len(roster.Players),
	)
	return out, nil
}

func (s *stores) useMemory(ctx context.Context, roster memory.RosterFile) error {
	s.players = memory.NewPlayerRepository(roster.Players, roster.Selected)
	s.settings = memory.NewSettingsRepository()
	s.snapshots = memory.NewSnapshotRepository()
	s.history = memory.NewHistoryRepository()

	lineups := memory.NewLineupRepository()
	if hint, ok := roster.LineupHint(); ok {
		if err := lineups.Save(ctx, hint); err != nil {
			return fmt.Errorf("save roster lineup: %w", err)
		}
	}
	s.lineups = lineups
	return nil
}

// useRedis keeps game records in redis. The roster, lineup and settings come
// from the local roster file.
func (s *stores) useRedis(ctx context.Context, cfg config.Config, roster memory.RosterFile, logger *logging.Logger) error {
	if err := s.useMemory(ctx, roster); err != nil {
		return err
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	s.closers = append(s.closers, client.Close)
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}

	s.snapshots = redisrepo.NewSnapshotRepository(client, cfg.RedisKeyPrefix, cfg.LivePreviewTTL)
	s.history = redisrepo.NewHistoryRepository(client, cfg.RedisKeyPrefix, logger)
	return nil
}

func (s *stores) usePostgres(ctx context.Context, cfg config.Config, roster memory.RosterFile) error {
	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, db.Close)

	if err := postgres.BootstrapSeed(ctx, db, roster.Players); err != nil {
		return err
	}

	lineups := postgres.NewLineupRepository(db)
	if hint, ok := roster.LineupHint(); ok {
		if err := lineups.Save(ctx, hint); err != nil {
			return fmt.Errorf("save roster lineup: %w", err)
		}
	}

	s.players = postgres.NewPlayerRepository(db)
	s.lineups = lineups
	s.settings = postgres.NewSettingsRepository(db)
	s.snapshots = postgres.NewSnapshotRepository(db, cfg.LivePreviewTTL)
	s.history = postgres.NewHistoryRepository(db)
	return nil
}
