package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/config"
	"github.com/dimashiii/EzySubs-App/internal/interfaces/httpapi"
	"github.com/dimashiii/EzySubs-App/internal/platform/id"
	"github.com/dimashiii/EzySubs-App/internal/platform/logging"
	"github.com/dimashiii/EzySubs-App/internal/usecase"
	"github.com/sourcegraph/conc"
)

const shutdownTimeout = 10 * time.Second

// App is one game session process: the stores, the game service and its
// HTTP control surface.
type App struct {
	cfg    config.Config
	logger *logging.Logger
	stores *stores
	game   *usecase.GameService
	server *http.Server
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	st, err := buildStores(ctx, cfg, logger.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("build stores: %w", err)
	}

	game, err := usecase.NewGameService(
		st.players,
		st.lineups,
		st.settings,
		st.snapshots,
		st.history,
		id.NewUUIDGenerator(),
		gameServiceConfig(cfg),
		logger,
	)
	if err != nil {
		_ = st.close()
		return nil, fmt.Errorf("build game service: %w", err)
	}

	handler := httpapi.NewHandler(game, logger.Named("http"))
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger.Named("http"), cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		stores: st,
		game:   game,
		server: server,
	}, nil
}

func gameServiceConfig(cfg config.Config) usecase.GameServiceConfig {
	return usecase.GameServiceConfig{
		DefaultSettings:  cfg.GameSettings,
		FinalizeOnLoad:   cfg.FinalizeOnLoad,
		TickInterval:     cfg.TickInterval,
		SnapshotInterval: cfg.SnapshotInterval,
		SnapshotWorkers:  cfg.SnapshotWorkers,
		HistoryListLimit: cfg.HistoryListLimit,
		StoreCircuit:     cfg.StoreCircuit,
	}
}

// Run starts or resumes the game, then serves HTTP and drives the clock until
// ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.stores.close(); err != nil {
			a.logger.Warn("close stores failed", "error", err)
		}
	}()

	view, err := a.game.Start(ctx)
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	a.logger.Info("game ready",
		"phase", string(view.Phase),
		"game_clock", view.GameClock,
		"starters", len(view.Starters),
		"bench", len(view.Bench),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	var wg conc.WaitGroup
	wg.Go(func() {
		if err := a.game.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("game loop stopped", "error", err)
		}
	})
	wg.Go(func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			cancel()
		}
	})

	<-runCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("graceful shutdown failed", "error", err)
	}
	wg.Wait()

	if err := a.game.Close(shutdownCtx); err != nil {
		a.logger.Warn("final snapshot failed", "error", err)
	}
	a.logger.Info("http server stopped")

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	default:
		return nil
	}
}
