package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	httpapi "overcooked-storefront/admin-svc/internal/api/http"
	"overcooked-storefront/admin-svc/internal/domain"
	"overcooked-storefront/admin-svc/internal/service"
	"overcooked-storefront/admin-svc/internal/storage"
	"overcooked-storefront/config"
	"overcooked-storefront/pkg/logx"
)

type Config struct {
	Env             string        `envconfig:"APP_ENV" default:"development"`
	Addr            string        `envconfig:"ADMIN_ADDR" default:":8082"`
	SessionTTL      time.Duration `envconfig:"ADMIN_SESSION_TTL" default:"12h"`
	AggregateTTL    time.Duration `envconfig:"DASHBOARD_RETENTION" default:"2160h"`
	ConsumerGroup   string        `envconfig:"KAFKA_GROUP_ID" default:"admin-svc"`
	TimeZone        string        `envconfig:"RESTAURANT_TZ" default:"America/Sao_Paulo"`
	BootstrapEmail  string        `envconfig:"ADMIN_EMAIL"`
	BootstrapSecret string        `envconfig:"ADMIN_PASSWORD"`
}

func main() {
	var (
		cfg      Config
		dbCfg    config.PostgresConfig
		redisCfg config.RedisConfig
		kafkaCfg config.KafkaConfig
	)
	for _, target := range []interface{}{&cfg, &dbCfg, &redisCfg, &kafkaCfg} {
		if err := config.Load(target); err != nil {
			logx.Fatal().Err(err).Msg("failed to load configuration")
		}
	}
	logx.Init(logx.ParseEnvironment(cfg.Env), "admin-svc")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		logx.Warn().Err(err).Str("tz", cfg.TimeZone).Msg("unknown time zone, using UTC")
		loc = time.UTC
	}

	db := config.MustInitPostgres(dbCfg)
	defer db.Close()
	rdb := config.MustInitRedis(redisCfg)
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logx.Fatal().Err(err).Msg("failed to ensure schema")
	}

	authSvc := service.NewAuthService(repo, storage.NewRedisSessionStore(rdb, cfg.SessionTTL), cfg.SessionTTL)
	if cfg.BootstrapEmail != "" && cfg.BootstrapSecret != "" {
		if err := authSvc.EnsureUser(ctx, cfg.BootstrapEmail, cfg.BootstrapSecret, domain.RoleAdmin); err != nil {
			logx.Fatal().Err(err).Msg("failed to bootstrap admin user")
		}
	}

	aggregates := storage.NewRedisAggregates(rdb, cfg.AggregateTTL)
	dashboardSvc := service.NewDashboardService(repo, aggregates, loc)

	reader := config.NewKafkaReader(kafkaCfg, cfg.ConsumerGroup)
	defer reader.Close()
	go service.NewConsumer(reader, repo, aggregates, loc).Start(ctx)

	handler := httpapi.NewHandler(authSvc, dashboardSvc)
	go func() {
		if err := httpapi.StartServer(cfg.Addr, httpapi.NewRouter(handler)); err != nil {
			logx.Fatal().Err(err).Msg("admin service stopped")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")
}
