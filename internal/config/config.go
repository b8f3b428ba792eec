package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type AppCfg struct{ Env, Port, LogLevel string }

type DBCfg struct {
	Driver         string
	DSN            string
	ConnectTimeout time.Duration
}

type RedisCfg struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type FormCfg struct {
	MaxBytes int64 // request body limit for form and JSON bodies
}

type Cfg struct {
	App   AppCfg
	DB    DBCfg
	Redis RedisCfg
	Form  FormCfg
}

func Load() Cfg {
	// 1) Load .env into process env (if file exists)
	_ = godotenv.Load()

	// 2) Read from env via viper
	cfg := FromViper(viper.New())

	// 3) Fail fast on required settings
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// FromViper reads the configuration from environment variables bound to v.
func FromViper(v *viper.Viper) Cfg {
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StorePostgres)
	v.SetDefault("DB_CONNECT_TIMEOUT", "30s")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("FORM_MAX_BYTES", 10<<20)

	return Cfg{
		App: AppCfg{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
		DB: DBCfg{
			Driver:         strings.ToLower(v.GetString("STORE_DRIVER")),
			DSN:            v.GetString("DB_DSN"),
			ConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
		},
		Redis: RedisCfg{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Form: FormCfg{MaxBytes: v.GetInt64("FORM_MAX_BYTES")},
	}
}

// Validate reports settings the service cannot start with.
func (c Cfg) Validate() error {
	var errs []error
	switch c.DB.Driver {
	case StorePostgres:
		if c.DB.DSN == "" {
			errs = append(errs, errors.New("DB_DSN is required when STORE_DRIVER=postgres"))
		}
	case StoreMemory:
	default:
		errs = append(errs, errors.New("STORE_DRIVER must be postgres or memory"))
	}
	if c.Form.MaxBytes <= 0 {
		errs = append(errs, errors.New("FORM_MAX_BYTES must be positive"))
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL must be positive when REDIS_ADDR is set"))
	}
	return errors.Join(errs...)
}
