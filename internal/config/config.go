package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" required:"true"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	// JWT
	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"24h"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"720h"`
	// HTTP
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RateLimitRPS    float64       `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst  int           `envconfig:"RATE_LIMIT_BURST" default:"10"`
	RateLimitClean  string        `envconfig:"RATE_LIMIT_CLEANUP" default:"@every 10m"`
	// Events
	WorkerCount  int    `envconfig:"WORKER_COUNT" default:"1"`
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"store_rating.events"`
	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	// Bootstrap administrator
	AdminName     string `envconfig:"ADMIN_NAME" default:"System Administrator"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	AdminAddress  string `envconfig:"ADMIN_ADDRESS" default:"System Address"`
}

// SeedAdmin 回報是否需要在啟動時建立管理員
func (a App) SeedAdmin() bool {
	return a.AdminEmail != "" && a.AdminPassword != ""
}

var dotenvLoad = godotenv.Load

// Load 先讀取 .env (若存在)，再以環境變數填入 App
func Load(files ...string) (App, error) {
	var c App
	if err := dotenvLoad(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, err
	}
	err := envconfig.Process("", &c)
	return c, err
}
