package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/saasbilling/handler"
	"github.com/dmitrymomot/saasbilling/internal/db/migrations"
	adminmod "github.com/dmitrymomot/saasbilling/modules/admin"
	billingmod "github.com/dmitrymomot/saasbilling/modules/billing"
	uimod "github.com/dmitrymomot/saasbilling/modules/ui"
	"github.com/dmitrymomot/saasbilling/pkg/config"
	"github.com/dmitrymomot/saasbilling/pkg/httpserver"
	"github.com/dmitrymomot/saasbilling/pkg/logger"
	"github.com/dmitrymomot/saasbilling/pkg/pg"
	"github.com/dmitrymomot/saasbilling/pkg/redis"
	"github.com/dmitrymomot/saasbilling/pkg/requestid"
	"github.com/dmitrymomot/saasbilling/svc/account"
	"github.com/dmitrymomot/saasbilling/svc/billing"
	"github.com/dmitrymomot/saasbilling/svc/checkout"
	"github.com/dmitrymomot/saasbilling/svc/identity"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"saasbilling"`
	LogLevel string `env:"LOG_LEVEL"`
	BasePath string `env:"FUNCTIONS_BASE_PATH" envDefault:"/functions"`
}

func main() {
	var app appConfig
	config.MustLoad(&app)

	opts := []logger.Option{
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if app.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(app.LogLevel))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), app, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, app appConfig, log *slog.Logger) error {
	var (
		pgCfg     pg.Config
		redisCfg  redis.Config
		httpCfg   httpserver.Config
		idCfg     identity.Config
		stripeCfg billing.StripeConfig
		eventsCfg billing.EventLogConfig
		coCfg     checkout.Config
		accCfg    account.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&idCfg) },
		func() error { return config.Load(&stripeCfg) },
		func() error { return config.Load(&eventsCfg) },
		func() error { return config.Load(&coCfg) },
		func() error { return config.Load(&accCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if pgCfg.MigrateOnStart {
		if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
			return err
		}
	}

	readiness := []func(context.Context) error{pg.Healthcheck(pool)}

	var events billing.EventLog
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func(c *goredis.Client) { _ = c.Close() }(client)
		events = billing.NewRedisEventLog(client, eventsCfg)
		readiness = append(readiness, redis.Healthcheck(client))
	} else {
		log.Warn("REDIS_URL is not set, webhook replays are only detected within this process")
		events = billing.NewMemoryEventLog(eventsCfg.TTL)
	}

	accounts := account.NewService(
		identity.New(idCfg),
		account.NewPGProfiles(pool),
		account.WithLogger(log.With(logger.Component("account"))),
		account.WithConcurrency(accCfg.ForceLogoutConcurrency),
	)
	webhooks := billing.NewService(
		billing.NewStripeVerifier(stripeCfg),
		billing.NewStripeGateway(stripeCfg),
		billing.NewPGStore(pool),
		billing.WithEventLog(events),
		billing.WithLogger(log.With(logger.Component("billing"))),
	)
	checkouts := checkout.NewService(coCfg, checkout.WithLogger(log.With(logger.Component("checkout"))))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.MethodNotAllowed(handler.MethodNotAllowed)
	r.NotFound(handler.NotFound)

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, readiness...))

	r.Route(app.BasePath, func(r chi.Router) {
		adminmod.NewService(accounts, log).Routes(r)
		billingmod.NewService(checkouts, webhooks, log).Routes(r)
		r.Mount("/ui", uimod.NewService(app.BasePath+"/ui", log).Handle())
	})

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) { l.Info("http server started", slog.String("addr", httpCfg.Addr)) }),
		httpserver.WithStopHook(func(l *slog.Logger) { l.Info("http server stopped") }),
	)
	return srv.Run(ctx, r)
}
