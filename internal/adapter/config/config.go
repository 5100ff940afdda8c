package config

import (
	"errors"
	"flag"
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/govalues/decimal"
	"github.com/joho/godotenv"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Gateway  *Gateway
	Pricing  *Pricing
	Webhook  *Webhook
	Auth     *Auth
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string `env:"APP_MODE"`
}

type Database struct {
	DSN            string        `env:"DATABASE_URI"`
	MaxConns       int32         `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	ConnectTimeout time.Duration `env:"DATABASE_CONNECT_TIMEOUT" envDefault:"5s"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Auth struct {
	TokenKey string        `env:"AUTH_TOKEN_KEY"`
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`
}

type Gateway struct {
	BaseURL       string        `env:"GATEWAY_BASE_URL" envDefault:"https://api.razorpay.com"`
	KeyID         string        `env:"GATEWAY_KEY_ID"`
	KeySecret     string        `env:"GATEWAY_KEY_SECRET"`
	WebhookSecret string        `env:"GATEWAY_WEBHOOK_SECRET"`
	Currency      string        `env:"GATEWAY_CURRENCY" envDefault:"INR"`
	Timeout       time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`
	MinAmount     int64         `env:"GATEWAY_MIN_AMOUNT" envDefault:"100"`
	MaxAmount     int64         `env:"GATEWAY_MAX_AMOUNT" envDefault:"100000000"`
}

// Pricing amounts are in major units.
type Pricing struct {
	TaxRate               decimal.Decimal `env:"PRICING_TAX_RATE" envDefault:"0.18"`
	ShippingFee           decimal.Decimal `env:"PRICING_SHIPPING_FEE" envDefault:"50"`
	FreeShippingThreshold decimal.Decimal `env:"PRICING_FREE_SHIPPING_THRESHOLD" envDefault:"500"`
	CODCharges            decimal.Decimal `env:"PRICING_COD_CHARGES" envDefault:"40"`
	CODCeiling            decimal.Decimal `env:"PRICING_COD_CEILING" envDefault:"10000"`
}

type Webhook struct {
	Workers        int           `env:"WEBHOOK_WORKERS" envDefault:"4"`
	QueueSize      int           `env:"WEBHOOK_QUEUE_SIZE" envDefault:"64"`
	RetryDelay     time.Duration `env:"WEBHOOK_RETRY_DELAY" envDefault:"5s"`
	MaxAttempts    int           `env:"WEBHOOK_MAX_ATTEMPTS" envDefault:"10"`
	RecallInterval time.Duration `env:"WEBHOOK_RECALL_INTERVAL" envDefault:"1m"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var gateway Gateway
	var pricing Pricing
	var webhook Webhook
	var auth Auth
	var app App

	// .env is optional, real environment wins
	_ = godotenv.Load()

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&gateway.BaseURL, "g", "", "Payment gateway base URL")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}
	baseURL := gateway.BaseURL
	err = env.ParseWithFuncs(&gateway, decimalParsers)
	if err != nil {
		return nil, fmt.Errorf("error parsing gateway config: %w", err)
	}
	if baseURL != "" {
		gateway.BaseURL = baseURL
	}
	err = env.ParseWithFuncs(&pricing, decimalParsers)
	if err != nil {
		return nil, fmt.Errorf("error parsing pricing config: %w", err)
	}
	err = env.Parse(&webhook)
	if err != nil {
		return nil, fmt.Errorf("error parsing webhook config: %w", err)
	}
	err = env.Parse(&auth)
	if err != nil {
		return nil, fmt.Errorf("error parsing auth config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Gateway:  &gateway,
		Pricing:  &pricing,
		Webhook:  &webhook,
		Auth:     &auth,
		App:      &app,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects configurations the payment flow cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Gateway.KeyID == "" {
		errs = append(errs, errors.New("GATEWAY_KEY_ID is required"))
	}
	if c.Gateway.KeySecret == "" {
		errs = append(errs, errors.New("GATEWAY_KEY_SECRET is required"))
	}
	if c.Gateway.WebhookSecret == "" {
		errs = append(errs, errors.New("GATEWAY_WEBHOOK_SECRET is required"))
	}
	if c.Gateway.MinAmount <= 0 || c.Gateway.MaxAmount < c.Gateway.MinAmount {
		errs = append(errs, fmt.Errorf("gateway amount bounds [%d, %d] are invalid",
			c.Gateway.MinAmount, c.Gateway.MaxAmount))
	}
	if c.Gateway.Timeout <= 0 {
		errs = append(errs, errors.New("gateway timeout must be positive"))
	}
	if c.Webhook.Workers <= 0 || c.Webhook.MaxAttempts <= 0 {
		errs = append(errs, errors.New("webhook workers and attempts must be positive"))
	}
	for name, d := range map[string]decimal.Decimal{
		"tax rate":                c.Pricing.TaxRate,
		"shipping fee":            c.Pricing.ShippingFee,
		"free shipping threshold": c.Pricing.FreeShippingThreshold,
		"cod charges":             c.Pricing.CODCharges,
		"cod ceiling":             c.Pricing.CODCeiling,
	} {
		if d.Sign() < 0 {
			errs = append(errs, fmt.Errorf("pricing %s must not be negative", name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

var decimalParsers = map[reflect.Type]env.ParserFunc{
	reflect.TypeOf(decimal.Decimal{}): func(v string) (interface{}, error) {
		return decimal.Parse(v)
	},
}
