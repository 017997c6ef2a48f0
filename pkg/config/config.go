package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const EnvPrefix = "GUJJU"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	JWT      JWTConfig
	Delivery DeliveryConfig
	Seed     SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Delivery.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GUJJU_APP_ENV" default:"dev"`
	Port         string `envconfig:"GUJJU_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GUJJU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GUJJU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type JWTConfig struct {
	Secret            string `envconfig:"GUJJU_JWT_SECRET" default:"dev-only-secret"`
	Issuer            string `envconfig:"GUJJU_JWT_ISSUER" default:"gujju.shop"`
	ExpirationMinutes int    `envconfig:"GUJJU_JWT_EXPIRATION_MINUTES" default:"720"`
}

// DeliveryConfig fixes the fee tiers quoted at checkout. SMART_MATCH is the
// discounted tier (see the route-overlap premise in the product docs).
type DeliveryConfig struct {
	StandardFee   string `envconfig:"GUJJU_DELIVERY_STANDARD_FEE" default:"40"`
	SmartMatchFee string `envconfig:"GUJJU_DELIVERY_SMART_MATCH_FEE" default:"20"`
}

func (d DeliveryConfig) validate() error {
	for _, raw := range []string{d.StandardFee, d.SmartMatchFee} {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("parsing delivery fee %q: %w", raw, err)
		}
		if fee.IsNegative() {
			return fmt.Errorf("delivery fee %q must not be negative", raw)
		}
	}
	return nil
}

// StandardFeeAmount returns the STANDARD tier fee. validate guarantees parseability.
func (d DeliveryConfig) StandardFeeAmount() decimal.Decimal {
	fee, _ := decimal.NewFromString(d.StandardFee)
	return fee
}

// SmartMatchFeeAmount returns the SMART_MATCH tier fee.
func (d DeliveryConfig) SmartMatchFeeAmount() decimal.Decimal {
	fee, _ := decimal.NewFromString(d.SmartMatchFee)
	return fee
}

type SeedConfig struct {
	Demo bool `envconfig:"GUJJU_SEED_DEMO_DATA" default:"true"`
}
