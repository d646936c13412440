package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Database    DatabaseConfig
	Redis       RedisConfig
	WooCommerce WooCommerceConfig
	Razorpay    RazorpayConfig
	Checkout    CheckoutConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// WooCommerceConfig is used to call the commerce platform's REST API
type WooCommerceConfig struct {
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
	APIVersion     string
}

// RazorpayConfig identifies the payment gateway account the widget runs
// against. The key id is public and is handed to the widget prefill.
type RazorpayConfig struct {
	KeyID string
}

// CheckoutConfig holds the pricing knobs and the payment wait bound.
type CheckoutConfig struct {
	FreeDeliveryThreshold int64
	DeliveryFee           int64
	CODSurcharge          int64
	Currency              string
	PaymentWaitTimeout    time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("WC_API_VERSION", "wc/v3")
	viper.SetDefault("FREE_DELIVERY_THRESHOLD", "500")
	viper.SetDefault("DELIVERY_FEE", "50")
	viper.SetDefault("COD_SURCHARGE", "50")
	viper.SetDefault("CURRENCY", "INR")
	viper.SetDefault("PAYMENT_WAIT_TIMEOUT", "10m")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	paymentWait, err := time.ParseDuration(getEnvOrViper("PAYMENT_WAIT_TIMEOUT", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_WAIT_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       viper.GetInt("REDIS_DB"),
		},
		WooCommerce: WooCommerceConfig{
			StoreURL:       strings.TrimSpace(getEnvOrViper("WC_STORE_URL", "")),
			ConsumerKey:    strings.TrimSpace(getEnvOrViper("WC_CONSUMER_KEY", "")),
			ConsumerSecret: strings.TrimSpace(getEnvOrViper("WC_CONSUMER_SECRET", "")),
			APIVersion:     getEnvOrViper("WC_API_VERSION", "wc/v3"),
		},
		Razorpay: RazorpayConfig{
			KeyID: strings.TrimSpace(getEnvOrViper("RAZORPAY_KEY_ID", "")),
		},
		Checkout: CheckoutConfig{
			FreeDeliveryThreshold: viper.GetInt64("FREE_DELIVERY_THRESHOLD"),
			DeliveryFee:           viper.GetInt64("DELIVERY_FEE"),
			CODSurcharge:          viper.GetInt64("COD_SURCHARGE"),
			Currency:              getEnvOrViper("CURRENCY", "INR"),
			PaymentWaitTimeout:    paymentWait,
		},
	}

	// Validate required fields
	if cfg.WooCommerce.StoreURL == "" {
		return nil, fmt.Errorf("WC_STORE_URL is required")
	}
	if cfg.WooCommerce.ConsumerKey == "" || cfg.WooCommerce.ConsumerSecret == "" {
		return nil, fmt.Errorf("WC_CONSUMER_KEY and WC_CONSUMER_SECRET are required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
