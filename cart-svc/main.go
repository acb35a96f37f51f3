package main

import (
	"context"
	"net/http"
	"time"
	_ "time/tzdata"

	httpapi "overcooked-storefront/cart-svc/internal/api/http"
	"overcooked-storefront/cart-svc/internal/cart"
	"overcooked-storefront/cart-svc/internal/hours"
	"overcooked-storefront/cart-svc/internal/service"
	"overcooked-storefront/cart-svc/internal/storage"
	"overcooked-storefront/config"
	"overcooked-storefront/pkg/logx"
)

type Config struct {
	Env           string        `envconfig:"APP_ENV" default:"development"`
	Addr          string        `envconfig:"CART_ADDR" default:":8083"`
	Storage       string        `envconfig:"CART_STORAGE" default:"sqlite"`
	SQLitePath    string        `envconfig:"CART_SQLITE_PATH" default:"cart.db"`
	SessionTTL    time.Duration `envconfig:"CART_SESSION_TTL" default:"72h"`
	MenuURL       string        `envconfig:"MENU_SERVICE_URL" default:"http://localhost:8081"`
	WhatsAppPhone string        `envconfig:"WHATSAPP_PHONE" required:"true"`
	TimeZone      string        `envconfig:"RESTAURANT_TZ" default:"America/Sao_Paulo"`
	PublishOrders bool          `envconfig:"PUBLISH_ORDERS" default:"true"`
	PixKey        string        `envconfig:"PIX_KEY"`
}

func main() {
	var (
		cfg      Config
		redisCfg config.RedisConfig
		kafkaCfg config.KafkaConfig
	)
	for _, target := range []interface{}{&cfg, &redisCfg, &kafkaCfg} {
		if err := config.Load(target); err != nil {
			logx.Fatal().Err(err).Msg("failed to load configuration")
		}
	}
	logx.Init(logx.ParseEnvironment(cfg.Env), "cart-svc")

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		logx.Warn().Err(err).Str("tz", cfg.TimeZone).Msg("unknown time zone, using UTC-3")
		loc = time.FixedZone("BRT", -3*60*60)
	}

	cartStorage := mustInitStorage(cfg, redisCfg)
	catalog := storage.NewCatalogClient(cfg.MenuURL, &http.Client{Timeout: 5 * time.Second})
	carts := service.NewCartService(cartStorage, catalog)

	var publisher service.OrderPublisher
	if cfg.PublishOrders {
		writer := config.NewKafkaWriter(kafkaCfg)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	checkoutSvc := service.NewCheckoutService(carts, hours.DefaultSchedule(loc), publisher, service.DefaultQRGenerator{}, cfg.WhatsAppPhone).
		WithPixKey(cfg.PixKey)

	handler := httpapi.NewHandler(carts, checkoutSvc)
	if err := httpapi.StartServer(cfg.Addr, httpapi.NewRouter(handler)); err != nil {
		logx.Fatal().Err(err).Msg("cart service stopped")
	}
}

// mustInitStorage picks the cart backend. Both keep one entry per session;
// only Redis expires idle carts.
func mustInitStorage(cfg Config, redisCfg config.RedisConfig) cart.Storage {
	switch cfg.Storage {
	case "redis":
		client := config.MustInitRedis(redisCfg)
		logx.Info().Str("addr", redisCfg.Addr()).Dur("ttl", cfg.SessionTTL).Msg("using redis cart storage")
		return storage.NewRedisStorage(client, cfg.SessionTTL)
	case "sqlite":
		db := config.MustInitSQLite(cfg.SQLitePath)
		s := storage.NewSQLiteStorage(db)
		if err := s.EnsureSchema(context.Background()); err != nil {
			logx.Fatal().Err(err).Msg("failed to ensure cart schema")
		}
		logx.Info().Str("path", cfg.SQLitePath).Msg("using sqlite cart storage")
		return s
	default:
		logx.Fatal().Str("storage", cfg.Storage).Msg("unknown CART_STORAGE, expected sqlite or redis")
		return nil
	}
}
