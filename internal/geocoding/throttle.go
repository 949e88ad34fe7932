package geocoding

import (
	"context"
	"fmt"
	"time"

	"github.com/Houeta/address-mapper/internal/models"
	"golang.org/x/time/rate"
)

// DefaultMinDelay is the default politeness spacing between lookup calls.
const DefaultMinDelay = 100 * time.Millisecond

// Throttled wraps a Provider and enforces a minimum delay between successive
// calls, independent of how fast the underlying service answers. The pause is
// a blocking side effect; it never changes the result. Burst is one slot, so
// for N calls the total time is at least (N-1) times the configured delay.
type Throttled struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewThrottled wraps inner with a fixed minimum inter-call delay.
// A non-positive delay falls back to DefaultMinDelay.
func NewThrottled(inner Provider, minDelay time.Duration) *Throttled {
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	return &Throttled{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Every(minDelay), 1),
	}
}

// Geocode waits for the next rate-limit slot, then delegates to the wrapped provider.
func (t *Throttled) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait interrupted: %w", err)
	}
	return t.inner.Geocode(ctx, address)
}
