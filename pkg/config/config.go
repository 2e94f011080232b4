package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	CORS         CORSConfig
	Orders       OrdersConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SILVEREMPIRE_APP_ENV" required:"true"`
	Port         string `envconfig:"SILVEREMPIRE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SILVEREMPIRE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SILVEREMPIRE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SILVEREMPIRE_DB_DSN"`
	Driver string `envconfig:"SILVEREMPIRE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SILVEREMPIRE_DB_HOST"`
	LegacyPort     int    `envconfig:"SILVEREMPIRE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SILVEREMPIRE_DB_USER"`
	LegacyPassword string `envconfig:"SILVEREMPIRE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SILVEREMPIRE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SILVEREMPIRE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SILVEREMPIRE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SILVEREMPIRE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SILVEREMPIRE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SILVEREMPIRE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN builds a postgres DSN from the legacy host/port fields when a full
// DSN is not supplied.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either SILVEREMPIRE_DB_DSN or host/user/name must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.LegacyUser, d.LegacyPassword),
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   d.LegacyName,
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SILVEREMPIRE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type OrdersConfig struct {
	MaxLineItems int `envconfig:"SILVEREMPIRE_ORDERS_MAX_LINE_ITEMS" default:"100"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SILVEREMPIRE_AUTO_MIGRATE" default:"false"`
}
