package app

import (
	"fmt"
	"net/http"

	"github.com/panjf2000/ants/v2"

	"github.com/aryasetia/dropshot/internal/config"
	"github.com/aryasetia/dropshot/internal/domain/match"
	"github.com/aryasetia/dropshot/internal/domain/roster"
	"github.com/aryasetia/dropshot/internal/domain/session"
	"github.com/aryasetia/dropshot/internal/infrastructure/account/appwrite"
	"github.com/aryasetia/dropshot/internal/infrastructure/repository/memory"
	"github.com/aryasetia/dropshot/internal/infrastructure/repository/postgres"
	"github.com/aryasetia/dropshot/internal/interfaces/httpapi"
	idgen "github.com/aryasetia/dropshot/internal/platform/id"
	"github.com/aryasetia/dropshot/internal/platform/logging"
	"github.com/aryasetia/dropshot/internal/usecase"
)

// NewHTTPServer assembles the full service. The returned cleanup func
// releases the checkpoint worker pool and the database handle; call it
// after the server has shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		matchRepo      match.Repository
		playerRepo     roster.Repository
		checkpointRepo session.Repository
	)

	cleanup := func() {}

	if cfg.DBURL == "" {
		logger.Info("using in-memory repositories", "reason", "DATABASE_URL empty")
		matchRepo = memory.NewMatchRepository(memory.SeedMatches())
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		checkpointRepo = memory.NewCheckpointRepository()
	} else {
		db, err := openDB(cfg.DBURL, cfg.DBDisablePreparedBinary)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		matchRepo = postgres.NewMatchRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		checkpointRepo = postgres.NewCheckpointRepository(db)
		cleanup = func() {
			if err := db.Close(); err != nil {
				logger.Warn("close database", "error", err)
			}
		}
	}

	pool, err := ants.NewPool(cfg.CheckpointWorkers)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create checkpoint pool: %w", err)
	}
	closeDB := cleanup
	cleanup = func() {
		pool.Release()
		closeDB()
	}

	matchSvc := usecase.NewMatchService(matchRepo, idgen.NewRandomGenerator(), logger)
	rosterSvc := usecase.NewRosterService(playerRepo, logger)
	sessionSvc := usecase.NewMatchSessionService(matchRepo, playerRepo, checkpointRepo, pool, logger)

	appwriteClient := appwrite.NewClient(
		&http.Client{Timeout: cfg.AppwriteTimeout},
		cfg.AppwriteEndpoint,
		cfg.AppwriteProjectID,
		logger,
	)

	handler := httpapi.NewHandler(matchSvc, rosterSvc, sessionSvc, logger)
	router := httpapi.NewRouter(handler, appwriteClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}
