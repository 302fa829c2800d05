// Package config provides configuration management for the iPay cashier service.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the cashier service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug bool `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Listen  struct {
		Type     string `yaml:"type" env:"LISTEN_TYPE" env-default:"port"`
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5100"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"ipay"`
	} `yaml:"mongo"`
	Merchant Merchant `yaml:"merchant"`
}

// Merchant holds the vendor account and the defaults applied to every
// cashier built from configuration.
type Merchant struct {
	VendorId string `yaml:"vendor_id" env:"MERCHANT_VENDOR_ID" env-default:""`
	Secret   string `yaml:"secret" env:"MERCHANT_SECRET" env-default:""`
	// RequestUrl is the gateway transaction endpoint
	RequestUrl string `yaml:"request_url" env:"MERCHANT_REQUEST_URL" env-default:"https://payments.ipayafrica.com/v3/ke"`
	Demo       bool   `yaml:"demo" env:"MERCHANT_DEMO" env-default:"false"`
	Currency   string `yaml:"currency" env:"MERCHANT_CURRENCY" env-default:"KES"`
	// Channels lists enabled channel identifiers; empty keeps the library defaults
	Channels     []string `yaml:"channels" env:"MERCHANT_CHANNELS" env-separator:","`
	CallbackUrl  string   `yaml:"callback_url" env:"MERCHANT_CALLBACK_URL" env-default:""`
	FailedUrl    string   `yaml:"failed_url" env:"MERCHANT_FAILED_URL" env-default:""`
	CallbackMode int      `yaml:"callback_mode" env:"MERCHANT_CALLBACK_MODE" env-default:"0"`
	// SignatureAlgorithm is "sha1" (gateway default) or "sha256"
	SignatureAlgorithm string `yaml:"signature_algorithm" env:"MERCHANT_SIGNATURE_ALGORITHM" env-default:"sha1"`
	TimeoutSeconds     int    `yaml:"timeout_seconds" env:"MERCHANT_TIMEOUT_SECONDS" env-default:"60"`
	// InsecureSkipVerify disables TLS certificate verification; never enable in production
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" env:"MERCHANT_INSECURE_SKIP_VERIFY" env-default:"false"`
}

var instance *Config
var loadErr error
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once;
// a failed load keeps returning the same error.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	once.Do(func() {
		instance, loadErr = Load(path)
	})
	return instance, loadErr
}

// Load reads a fresh configuration without touching the process-wide instance.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("load config: %w; %s", err, desc)
	}
	return conf, nil
}
