package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/konjug-backend/internal/adapter/cache"
	"github.com/heartmarshall/konjug-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/konjug-backend/internal/adapter/postgres/user"
	verbrepo "github.com/heartmarshall/konjug-backend/internal/adapter/postgres/verb"
	"github.com/heartmarshall/konjug-backend/internal/auth"
	"github.com/heartmarshall/konjug-backend/internal/config"
	"github.com/heartmarshall/konjug-backend/internal/service/user"
	"github.com/heartmarshall/konjug-backend/internal/service/verb"
	"github.com/heartmarshall/konjug-backend/internal/transport/middleware"
	"github.com/heartmarshall/konjug-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations when enabled, and serves HTTP until ctx
// is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	handler, closeHandler := NewHandler(cfg, logger, pool)
	defer closeHandler()

	srv := newHTTPServer(cfg.Server, handler)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}

	return serve(ctx, srv, ln, cfg.Server.ShutdownTimeout, logger)
}

// NewHandler wires repositories, services, and handlers on top of pool and
// returns the complete HTTP handler. The returned func stops background
// work owned by the handler and must be called once serving ends.
func NewHandler(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (http.Handler, func()) {
	txm := postgres.NewTxManager(pool)
	searchCache := cache.NewSearchCache(cfg.Verbs.SearchCacheTTL, cfg.Verbs.CacheCleanupPeriod)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.PasswordHashCost)

	verbService := verb.NewService(logger, verbrepo.New(pool), txm, searchCache, cfg.Verbs)
	userService := user.NewService(logger, userrepo.New(pool), hasher, jwtManager)

	router := rest.NewRouter(rest.Handlers{
		Verb:   rest.NewVerbHandler(verbService, logger),
		User:   rest.NewUserHandler(userService, cfg.Auth, logger),
		Health: rest.NewHealthHandler(pool, postgres.NewSchema(pool), BuildVersion()),
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)

	return withMiddleware(cfg, logger, router, jwtManager, limiter), limiter.Close
}
