package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
)

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type     ProviderType  // Type of provider to create
	APIKey   string        // API key (used by Google provider)
	MinDelay time.Duration // Minimum delay between successive lookup calls
	Logger   *slog.Logger  // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration
// and wraps it with the fixed-delay throttle, so every provider honors the
// shared lookup service's usage policy regardless of type.
//
// Supported provider types:
// - "google": Google Maps Geocoding API (requires API key)
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
//
// A misconfigured provider (unknown type, missing API key) is a programmer
// error and is returned as a fatal error rather than a Failed result.
func NewProvider(config ProviderConfig) (Provider, error) {
	inner, err := newRawProvider(config)
	if err != nil {
		return nil, err
	}
	return NewThrottled(inner, config.MinDelay), nil
}

func newRawProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return NewNominatimProvider(config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Maps geocoding provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	client, err := maps.NewClient(maps.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
