package config

import (
	"os"
	"strconv"
	"time"
)

// Config is a one-shot snapshot of the environment, taken at startup.
type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	MpesaConsumerKey    string
	MpesaConsumerSecret string
	MpesaShortcode      string
	MpesaPasskey        string
	MpesaBaseURL        string
	MpesaCallbackURL    string
	MpesaTimeout        time.Duration

	AllowedOrigin string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("PAYMENTS_DB"),

		MpesaConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),
		MpesaConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"),
		MpesaShortcode:      os.Getenv("MPESA_SHORTCODE"),
		MpesaPasskey:        os.Getenv("MPESA_PASSKEY"),
		MpesaBaseURL:        getEnv("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke"),
		MpesaCallbackURL:    os.Getenv("MPESA_CALLBACK_URL"),
		MpesaTimeout:        time.Duration(getEnvInt("MPESA_TIMEOUT_SECONDS", 30)) * time.Second,

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
	}
}

// StoreConfigured reports whether the mandatory database settings are present.
// The process must not start without them.
func (c Config) StoreConfigured() bool {
	return c.DBUser != "" && c.DBHost != "" && c.DBName != ""
}

// DemoMode is on when M-Pesa credentials are absent; the provider client is
// then replaced with a local simulation instead of failing startup.
func (c Config) DemoMode() bool {
	return c.MpesaConsumerKey == "" || c.MpesaConsumerSecret == ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
