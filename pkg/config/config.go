package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	Cart         CartConfig
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
	Env          string `envconfig:"FORNELLO_APP_ENV" required:"true"`
	Port         string `envconfig:"FORNELLO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FORNELLO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FORNELLO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FORNELLO_DB_DSN"`
	Driver string `envconfig:"FORNELLO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FORNELLO_DB_HOST"`
	Port     int    `envconfig:"FORNELLO_DB_PORT" default:"5432"`
	User     string `envconfig:"FORNELLO_DB_USER"`
	Password string `envconfig:"FORNELLO_DB_PASSWORD"`
	Name     string `envconfig:"FORNELLO_DB_NAME"`
	SSLMode  string `envconfig:"FORNELLO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FORNELLO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FORNELLO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FORNELLO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FORNELLO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FORNELLO_REDIS_URL" required:"true"`
	Password     string        `envconfig:"FORNELLO_REDIS_PASSWORD"`
	DB           int           `envconfig:"FORNELLO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FORNELLO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FORNELLO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FORNELLO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FORNELLO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FORNELLO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig carries the checkout pricing knobs. Amounts are decimal
// dollars; TaxRatePercent is a percentage (8.25 means 8.25%).
type PricingConfig struct {
	TaxRatePercent   decimal.Decimal `envconfig:"FORNELLO_TAX_RATE_PERCENT" default:"8.25"`
	DeliveryFee      decimal.Decimal `envconfig:"FORNELLO_DELIVERY_FEE" default:"3.99"`
	ReconcileEpsilon decimal.Decimal `envconfig:"FORNELLO_RECONCILE_EPSILON" default:"0.01"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"FORNELLO_CART_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FORNELLO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
