package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

const (
	ProviderEnot     = "enot"
	ProviderYooKassa = "yookassa"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	// Logging
	LogMode string `env:"LOG_MODE" envDefault:"release"`
	LogDir  string `env:"LOG_DIR"`

	// Catalog
	CatalogPrice  string `env:"CATALOG_PRICE" envDefault:"20"`
	ProductName   string `env:"PRODUCT_NAME" envDefault:"FROT game"`
	OrderIDPrefix string `env:"ORDER_ID_PREFIX" envDefault:"frot"`

	// Payment
	PaymentProvider string        `env:"PAYMENT_PROVIDER" envDefault:"enot"`
	GatewayTimeout  time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`
	Enot            EnotConfig
	YooKassa        YooKassaConfig

	// Fulfillment
	CDNBaseURL     string `env:"CDN_BASE_URL" envDefault:"https://cdn.poehali.dev/projects"`
	CDNProjectID   string `env:"AWS_ACCESS_KEY_ID"`
	DownloadObject string `env:"DOWNLOAD_OBJECT" envDefault:"bucket/frot-game.zip"`

	CORSMaxAge time.Duration `env:"CORS_MAX_AGE" envDefault:"24h"`
}

// Credentials may be empty at start-up; the gateway reports that per request.
type EnotConfig struct {
	ShopID    string `env:"ENOT_SHOP_ID"`
	SecretKey string `env:"ENOT_SECRET_KEY"`
	PayURL    string `env:"ENOT_PAY_URL" envDefault:"https://enot.io/pay"`
}

type YooKassaConfig struct {
	ShopID    string `env:"YOOKASSA_SHOP_ID"`
	SecretKey string `env:"YOOKASSA_SECRET_KEY"`
	APIURL    string `env:"YOOKASSA_API_URL" envDefault:"https://api.yookassa.ru/v3"`
	ReturnURL string `env:"YOOKASSA_RETURN_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.PaymentProvider = strings.ToLower(strings.TrimSpace(cfg.PaymentProvider))
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) check() error {
	switch c.PaymentProvider {
	case ProviderEnot, ProviderYooKassa:
	default:
		return fmt.Errorf("unknown payment provider %q", c.PaymentProvider)
	}
	price, err := c.Price()
	if err != nil {
		return err
	}
	if !price.IsPositive() {
		return fmt.Errorf("catalog price must be positive, got %s", price)
	}
	if c.GatewayTimeout <= 0 {
		return fmt.Errorf("gateway timeout must be positive, got %s", c.GatewayTimeout)
	}
	return nil
}

// Price is the base charge for the single catalog item.
func (c *Config) Price() (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(c.CatalogPrice))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse catalog price %q: %w", c.CatalogPrice, err)
	}
	return price, nil
}

// Warnings lists settings that let the service start but break a flow.
func (c *Config) Warnings() []string {
	var warnings []string
	if strings.Trim(c.CDNProjectID, "/ ") == "" {
		warnings = append(warnings, "AWS_ACCESS_KEY_ID is empty, download links will miss the CDN project")
	}
	if strings.Trim(c.DownloadObject, "/ ") == "" {
		warnings = append(warnings, "DOWNLOAD_OBJECT is empty, download links will point at the project root")
	}
	return warnings
}

// DownloadURL is the fixed fulfillment link handed to paying customers.
func (c *Config) DownloadURL() string {
	parts := []string{
		strings.TrimRight(c.CDNBaseURL, "/"),
		strings.Trim(c.CDNProjectID, "/"),
		strings.TrimLeft(c.DownloadObject, "/"),
	}
	return strings.Join(parts, "/")
}
