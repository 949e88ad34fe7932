package geocoding_test

import (
	"context"
	"testing"
	"time"

	"github.com/Houeta/address-mapper/internal/geocoding"
	"github.com/Houeta/address-mapper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instantProvider resolves every address immediately, counting calls.
type instantProvider struct {
	calls int
}

func (p *instantProvider) Geocode(_ context.Context, _ string) (*models.Coordinates, error) {
	p.calls++
	return &models.Coordinates{Latitude: 37.422, Longitude: -122.084}, nil
}

func TestThrottled_Geocode(t *testing.T) {
	ctx := context.Background()

	t.Run("enforces minimum spacing between calls", func(t *testing.T) {
		const (
			calls    = 3
			minDelay = 30 * time.Millisecond
		)

		inner := &instantProvider{}
		throttled := geocoding.NewThrottled(inner, minDelay)

		start := time.Now()
		for i := 0; i < calls; i++ {
			coords, err := throttled.Geocode(ctx, "1600 Amphitheatre Parkway")
			require.NoError(t, err)
			require.NotNil(t, coords)
		}
		elapsed := time.Since(start)

		assert.Equal(t, calls, inner.calls)
		// N calls must take at least (N-1) delays; the first slot is free.
		assert.GreaterOrEqual(t, elapsed, (calls-1)*minDelay)
	})

	t.Run("canceled context interrupts the wait", func(t *testing.T) {
		inner := &instantProvider{}
		throttled := geocoding.NewThrottled(inner, time.Minute)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		// Exhaust the free initial slot first so the second call must wait.
		_, _ = throttled.Geocode(ctx, "first")
		coords, err := throttled.Geocode(canceled, "second")

		require.Error(t, err)
		require.Nil(t, coords)
		assert.Contains(t, err.Error(), "rate limit wait interrupted")
	})

	t.Run("non-positive delay falls back to the default", func(t *testing.T) {
		inner := &instantProvider{}
		throttled := geocoding.NewThrottled(inner, 0)

		coords, err := throttled.Geocode(ctx, "somewhere")

		require.NoError(t, err)
		require.NotNil(t, coords)
	})
}
