package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Redis   RedisConfig
	Pricing PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POS_APP_ENV" required:"true"`
	Port         string `envconfig:"POS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"POS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the key-value persistence backend for the register.
type StoreConfig struct {
	Backend string `envconfig:"POS_STORE_BACKEND" default:"file"`
	DataDir string `envconfig:"POS_STORE_DATA_DIR" default:"./data"`
}

func (s *StoreConfig) validate() error {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	switch backend {
	case StoreBackendFile, StoreBackendMemory, StoreBackendRedis:
		s.Backend = backend
		return nil
	}
	return fmt.Errorf("%s must be one of file, memory, redis; got %q", EnvStoreBackend, s.Backend)
}

type RedisConfig struct {
	URL          string        `envconfig:"POS_REDIS_URL"`
	Address      string        `envconfig:"POS_REDIS_ADDR"`
	Password     string        `envconfig:"POS_REDIS_PASSWORD"`
	DB           int           `envconfig:"POS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"POS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig carries the register-wide tax policy.
type PricingConfig struct {
	TaxRate  decimal.Decimal `envconfig:"POS_TAX_RATE" default:"0.18"`
	Currency string          `envconfig:"POS_CURRENCY" default:"PEN"`
}

func (p PricingConfig) validate() error {
	if p.TaxRate.IsNegative() {
		return fmt.Errorf("%s must be non-negative, got %s", EnvTaxRate, p.TaxRate)
	}
	return nil
}
