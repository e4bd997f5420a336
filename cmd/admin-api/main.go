package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/guardkit/modules/admin"
	"github.com/dmitrymomot/guardkit/pkg/auth"
	"github.com/dmitrymomot/guardkit/pkg/config"
	"github.com/dmitrymomot/guardkit/pkg/httpserver"
	"github.com/dmitrymomot/guardkit/pkg/logger"
	"github.com/dmitrymomot/guardkit/pkg/pg"
	"github.com/dmitrymomot/guardkit/pkg/ratelimit"
	"github.com/dmitrymomot/guardkit/pkg/redis"
	"github.com/dmitrymomot/guardkit/pkg/requestid"
	"github.com/dmitrymomot/guardkit/pkg/session"
	"github.com/dmitrymomot/guardkit/pkg/tenant"
)

type appConfig struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	Server   httpserver.Config
	Postgres pg.Config
	Redis    redis.Config
	Session  session.Config
	Admin    admin.Config
}

func main() {
	_ = config.LoadEnv()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, "admin-api"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			session.LoggerExtractor(),
			tenant.LoggerExtractor(),
		),
	)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("admin-api stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.Postgres, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	sessions := session.NewFromConfig(cfg.Session, session.WithStore(
		session.NewRedisStore(redisClient,
			session.WithKeyPrefix(cfg.Session.KeyPrefix),
			session.WithOpTimeout(cfg.Session.StoreTimeout),
		),
	))

	limiterConfigs := ratelimit.DefaultLimiterConfigs()
	rules := admin.DefaultRules()
	if cfg.Admin.RateLimitConfigPath != "" {
		rlCfg, err := ratelimit.LoadConfig(cfg.Admin.RateLimitConfigPath)
		if err != nil {
			return err
		}
		for name, lc := range rlCfg.Limiters {
			limiterConfigs[name] = lc
		}
		if len(rlCfg.Rules) > 0 {
			rules = rlCfg.Rules
		}
	}
	limiter, err := ratelimit.NewRegistry(ratelimit.NewRedisStore(redisClient), limiterConfigs)
	if err != nil {
		return err
	}

	storage := admin.NewStorage(pool)
	authSvc := auth.NewService(storage, storage, sessions,
		auth.WithSuperTenantID(cfg.Admin.SuperTenantID),
	)

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	r.Mount("/", admin.Router(admin.RouterDeps{
		Auth:          authSvc,
		Sessions:      sessions,
		Snapshots:     storage,
		Users:         storage,
		Limiter:       limiter,
		Rules:         rules,
		SuperTenantID: cfg.Admin.SuperTenantID,
		Logger:        log,
	}))

	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("admin-api listening", logger.Component("httpserver"))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("admin-api stopped", logger.Component("httpserver"))
		}),
	)

	return srv.Run(ctx, r)
}
