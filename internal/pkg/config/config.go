package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Port          string `envconfig:"SHOP_SERVER_PORT" default:"8080"`
	ClientBaseURL string `envconfig:"SHOP_CLIENT_BASE_URL" default:"http://localhost:5173"`
	// PublicBaseURL is the externally reachable address the payment gateway
	// uses for its callback URLs.
	PublicBaseURL string `envconfig:"SHOP_PUBLIC_BASE_URL" default:"http://localhost:8080"`
}

type DatabaseConfig struct {
	URL string `envconfig:"SHOP_DATABASE_URL"`
}

type RedisConfig struct {
	Addr string `envconfig:"SHOP_REDIS_ADDR" default:"localhost:6379"`
}

type AuthConfig struct {
	JWTSecret  string        `envconfig:"SHOP_JWT_SECRET"`
	TokenTTL   time.Duration `envconfig:"SHOP_TOKEN_TTL" default:"1h"`
	AdminEmail string        `envconfig:"SHOP_ADMIN_EMAIL"`
}

type GatewayConfig struct {
	BaseURL       string        `envconfig:"SHOP_GATEWAY_BASE_URL" default:"https://sandbox.sslcommerz.com"`
	StoreID       string        `envconfig:"SHOP_GATEWAY_STORE_ID"`
	StorePassword string        `envconfig:"SHOP_GATEWAY_STORE_PASSWORD"`
	Currency      string        `envconfig:"SHOP_GATEWAY_CURRENCY" default:"USD"`
	Timeout       time.Duration `envconfig:"SHOP_GATEWAY_TIMEOUT" default:"15s"`
	// CallbackSecret enables HMAC verification of gateway callbacks when set.
	CallbackSecret string `envconfig:"SHOP_GATEWAY_CALLBACK_SECRET"`
}

type CheckoutConfig struct {
	// PendingTTL controls the stale-pending-order sweep; zero disables it.
	PendingTTL    time.Duration `envconfig:"SHOP_PENDING_ORDER_TTL" default:"24h"`
	SweepInterval time.Duration `envconfig:"SHOP_PENDING_SWEEP_INTERVAL" default:"1h"`
}

type Configuration struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Gateway  GatewayConfig
	Checkout CheckoutConfig
}

// Load reads .env (when present) and the SHOP_* environment into a Configuration.
func Load() (*Configuration, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}

	var cfg Configuration
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Configuration) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("SHOP_DATABASE_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("SHOP_JWT_SECRET is required")
	}
	if c.Gateway.StoreID == "" || c.Gateway.StorePassword == "" {
		return fmt.Errorf("SHOP_GATEWAY_STORE_ID and SHOP_GATEWAY_STORE_PASSWORD are required")
	}
	return nil
}
