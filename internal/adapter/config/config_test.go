package config

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Database: &Database{},
		HTTP:     &HTTP{HostString: "localhost:8080"},
		Gateway: &Gateway{
			KeyID:         "rzp_test",
			KeySecret:     "secret",
			WebhookSecret: "whsec",
			Timeout:       time.Second,
			MinAmount:     100,
			MaxAmount:     100_000_000,
		},
		Pricing: &Pricing{
			TaxRate:     decimal.MustParse("0.18"),
			ShippingFee: decimal.MustParse("50"),
			CODCeiling:  decimal.MustParse("10000"),
		},
		Webhook: &Webhook{Workers: 1, MaxAttempts: 1},
		Auth:    &Auth{TokenTTL: time.Hour},
		App:     &App{LogLevel: "debug", Mode: AppModeDevelop},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "missing key secret", modify: func(c *Config) { c.Gateway.KeySecret = "" }, wantErr: true},
		{name: "missing webhook secret", modify: func(c *Config) { c.Gateway.WebhookSecret = "" }, wantErr: true},
		{name: "missing key id", modify: func(c *Config) { c.Gateway.KeyID = "" }, wantErr: true},
		{name: "inverted bounds", modify: func(c *Config) { c.Gateway.MaxAmount = 10 }, wantErr: true},
		{name: "no timeout", modify: func(c *Config) { c.Gateway.Timeout = 0 }, wantErr: true},
		{name: "no workers", modify: func(c *Config) { c.Webhook.Workers = 0 }, wantErr: true},
		{name: "negative fee", modify: func(c *Config) { c.Pricing.ShippingFee = decimal.MustParse("-1") }, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := validConfig()
			test.modify(c)
			err := c.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
