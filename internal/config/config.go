package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the address mapper.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the web and monitoring server.
// - ProviderType: The type of geocoding provider to use (google, nominatim).
// - APIKey: The API key for accessing external services (required for Google).
// - RateDelay: The minimum spacing between successive lookup calls.
// - MaxUploadMB: The upload size cap for CSV files, in megabytes.
type Config struct {
	Env          string        // Env is the current environment: local, development, production.
	Port         int           // Port is the web server port.
	ProviderType string        // ProviderType specifies which geocoding provider to use.
	APIKey       string        // The API key for accessing external services.
	RateDelay    time.Duration // The minimum delay between lookup calls.
	MaxUploadMB  int64         // The CSV upload size cap in megabytes.
}

// MustLoad loads the configuration from the environment (a .env file is
// honored when present) and returns a Config. Malformed values are programmer
// errors and panic rather than degrade silently.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.SetEnvPrefix("MAPPER")
	vpr.AutomaticEnv()
	vpr.SetDefault("env", "production")
	vpr.SetDefault("port", "8080")
	vpr.SetDefault("provider_type", "nominatim")
	vpr.SetDefault("rate_delay", "100ms")
	vpr.SetDefault("max_upload_mb", "10")

	rateDelay, err := time.ParseDuration(vpr.GetString("rate_delay"))
	if err != nil {
		panic("failed to parse rate delay from configuration")
	}

	port, err := strconv.Atoi(vpr.GetString("port"))
	if err != nil {
		panic("failed to parse port for web server from configuration")
	}

	maxUploadMB, err := strconv.ParseInt(vpr.GetString("max_upload_mb"), 10, 64)
	if err != nil {
		panic("failed to parse upload size cap from configuration, must be an integer")
	}

	return &Config{
		Env:          vpr.GetString("env"),
		Port:         port,
		ProviderType: vpr.GetString("provider_type"),
		APIKey:       vpr.GetString("api_key"),
		RateDelay:    rateDelay,
		MaxUploadMB:  maxUploadMB,
	}
}
