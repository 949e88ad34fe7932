package geocoding

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Houeta/address-mapper/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding coordinates and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrNoMatch is the shared base error for lookups that reached the service but
// resolved to nothing. Providers wrap it so callers can tell an unmatched
// address apart from a transport failure.
var ErrNoMatch = errors.New("address did not match any location")

// ErrEmptyAddress is returned when the lookup query is blank. It counts as a
// no-match, not a transport failure.
var ErrEmptyAddress = fmt.Errorf("%w: address fields are empty", ErrNoMatch)

// IsNoMatch reports whether err represents an unmatched address rather than a
// failure to reach the lookup service.
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}
