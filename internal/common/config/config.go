package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   string `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	// Share identifies where invite links point to.
	Share struct {
		Origin   string `env:"SHARE_ORIGIN" envDefault:"http://localhost:3000"`
		BasePath string `env:"SHARE_BASE_PATH" envDefault:""`
	}

	// Platform holds credentials for the upstream campaign platform.
	Platform struct {
		BaseURL    string `env:"PLATFORM_BASE_URL,required"`
		AppKey     string `env:"PLATFORM_APP_KEY,required"`
		AppSecret  string `env:"PLATFORM_APP_SECRET,required"`
		Name       string `env:"PLATFORM_NAME" envDefault:"web"`
		ActivityID int    `env:"ACTIVITY_ID,required"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	// Host describes the embedding mini-program shell.
	Host struct {
		// InitDataSecret verifies the HMAC signature on host-supplied
		// init data. Empty disables host identity (browser mode only).
		InitDataSecret string `env:"HOST_INIT_DATA_SECRET" envDefault:""`
		// InitDataTTL in seconds; 0 disables the expiration check.
		InitDataTTL int `env:"HOST_INIT_DATA_TTL" envDefault:"0"`
	}

	Cache struct {
		SnapshotTTLSeconds   int `env:"SNAPSHOT_TTL_SECONDS" envDefault:"30"`
		GiftRecordTTLSeconds int `env:"GIFT_RECORD_TTL_SECONDS" envDefault:"60"`
		SessionTTLSeconds    int `env:"SESSION_TTL_SECONDS" envDefault:"86400"`
	}

	Refresh struct {
		Enabled         bool `env:"REFRESH_ENABLED" envDefault:"true"`
		IntervalSeconds int  `env:"REFRESH_INTERVAL_SECONDS" envDefault:"60"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env отсутствует: в production переменные заданы напрямую
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
