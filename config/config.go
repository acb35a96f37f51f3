package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"overcooked-storefront/pkg/logx"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type PostgresConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"storefront"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
}

func (c PostgresConfig) DSN() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.Name + " sslmode=disable"
}

type RedisConfig struct {
	Host string `envconfig:"REDIS_HOST" default:"localhost"`
	Port string `envconfig:"REDIS_PORT" default:"6379"`
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type KafkaConfig struct {
	Broker      string `envconfig:"KAFKA_BROKER" default:"localhost:9092"`
	OrdersTopic string `envconfig:"KAFKA_ORDERS_TOPIC" default:"orders.placed"`
}

// Load reads an optional .env file and then fills target from the environment.
func Load(target interface{}) error {
	if err := godotenv.Load(); err != nil {
		logx.Debug().Err(err).Msg("no .env file loaded")
	}
	if err := envconfig.Process("", target); err != nil {
		return fmt.Errorf("process env config: %w", err)
	}
	return nil
}

func MustInitPostgres(cfg PostgresConfig) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		logx.Fatal().Err(err).Msg("failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logx.Fatal().Err(err).Str("addr", cfg.Addr()).Msg("failed to connect to redis")
	}

	return client
}

// MustInitSQLite opens a single-file SQLite database in WAL mode.
func MustInitSQLite(path string) *sqlx.DB {
	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		logx.Fatal().Err(err).Str("path", path).Msg("failed to open sqlite database")
	}
	if err = db.Ping(); err != nil {
		logx.Fatal().Err(err).Str("path", path).Msg("failed to ping sqlite database")
	}
	return db
}

func NewKafkaReader(cfg KafkaConfig, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.OrdersTopic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.OrdersTopic,
		Balancer: &kafka.LeastBytes{},
	}
}
