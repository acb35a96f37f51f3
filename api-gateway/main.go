package main

import (
	"net/http"
	"time"

	"overcooked-storefront/api-gateway/internal/gateway"
	"overcooked-storefront/config"
	"overcooked-storefront/pkg/logx"

	"github.com/rs/cors"
)

type Config struct {
	Env            string        `envconfig:"APP_ENV" default:"development"`
	Addr           string        `envconfig:"GATEWAY_ADDR" default:":8080"`
	UpstreamTimeout time.Duration `envconfig:"GATEWAY_UPSTREAM_TIMEOUT" default:"15s"`
	AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`
}

func main() {
	var (
		cfg   Config
		gwCfg gateway.Config
	)
	for _, target := range []interface{}{&cfg, &gwCfg} {
		if err := config.Load(target); err != nil {
			logx.Fatal().Err(err).Msg("failed to load configuration")
		}
	}
	logx.Init(logx.ParseEnvironment(cfg.Env), "api-gateway")

	gw := gateway.NewGateway(gwCfg, &http.Client{Timeout: cfg.UpstreamTimeout})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Cart-ID"},
		ExposedHeaders:   []string{"X-Cart-ID"},
		AllowCredentials: true,
	})
	handler := c.Handler(gw.SetupRoutes())

	logx.Info().Str("addr", cfg.Addr).Msg("api gateway starting")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logx.Fatal().Err(err).Msg("api gateway stopped")
	}
}
