package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/peladahub/pickup-league/internal/config"
	"github.com/peladahub/pickup-league/internal/domain/scoring"
	"github.com/peladahub/pickup-league/internal/infrastructure/account/gatekeeper"
	"github.com/peladahub/pickup-league/internal/infrastructure/repository/postgres"
	"github.com/peladahub/pickup-league/internal/interfaces/httpapi"
	"github.com/peladahub/pickup-league/internal/platform/logging"
	"github.com/peladahub/pickup-league/internal/platform/resilience"
	"github.com/peladahub/pickup-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"github.com/valyala/fasthttp"
)

// OpenDB connects to Postgres with OpenTelemetry instrumentation and
// verifies the connection before returning.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// NewHTTPServer wires repositories, services and the HTTP surface.
func NewHTTPServer(cfg config.Config, db *sqlx.DB, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	playerRepo := postgres.NewPlayerRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)
	roundRepo := postgres.NewRoundRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	championshipRepo := postgres.NewChampionshipRepository(db)

	engine := scoring.NewEngine(cfg.ScoringWeights)

	playerSvc := usecase.NewPlayerService(playerRepo)
	leagueSvc := usecase.NewLeagueService(leagueRepo)
	roundSvc := usecase.NewRoundService(roundRepo, leagueRepo, playerRepo, matchRepo, engine)
	matchSvc := usecase.NewMatchService(matchRepo, roundRepo)
	statsSvc := usecase.NewStatsService(statsRepo, leagueRepo, engine, cfg.StatsMaxWorkers)
	championshipSvc := usecase.NewChampionshipService(championshipRepo, playerRepo)

	gatekeeperClient := gatekeeper.NewClient(gatekeeper.ClientConfig{
		HTTPClient:     &fasthttp.Client{},
		BaseURL:        cfg.GatekeeperBaseURL,
		IntrospectPath: cfg.GatekeeperIntrospectPath,
		Timeout:        cfg.GatekeeperTimeout,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenMaxRq,
		},
	})

	handler := httpapi.NewHandler(playerSvc, leagueSvc, roundSvc, matchSvc, statsSvc, championshipSvc, logger)
	router := httpapi.NewRouter(handler, gatekeeperClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
