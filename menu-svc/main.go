package main

import (
	"context"

	httpapi "overcooked-storefront/menu-svc/internal/api/http"
	"overcooked-storefront/menu-svc/internal/service"
	"overcooked-storefront/menu-svc/internal/storage"
	"overcooked-storefront/config"
	"overcooked-storefront/pkg/logx"
)

type Config struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Addr      string `envconfig:"MENU_ADDR" default:":8081"`
	UploadDir string `envconfig:"UPLOAD_DIR" default:"./uploads"`
}

func main() {
	var (
		cfg   Config
		dbCfg config.PostgresConfig
	)
	for _, target := range []interface{}{&cfg, &dbCfg} {
		if err := config.Load(target); err != nil {
			logx.Fatal().Err(err).Msg("failed to load configuration")
		}
	}
	logx.Init(logx.ParseEnvironment(cfg.Env), "menu-svc")

	db := config.MustInitPostgres(dbCfg)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		logx.Fatal().Err(err).Msg("failed to ensure schema")
	}

	productSvc := service.NewProductService(repo, storage.NewLocalImageStore(cfg.UploadDir, "/uploads"))
	handler := httpapi.NewHandler(productSvc)

	if err := httpapi.StartServer(cfg.Addr, httpapi.NewRouter(handler, cfg.UploadDir)); err != nil {
		logx.Fatal().Err(err).Msg("menu service stopped")
	}
}
