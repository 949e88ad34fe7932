package webmap_test

import (
	"bytes"
	"testing"

	"github.com/Houeta/address-mapper/internal/models"
	"github.com/Houeta/address-mapper/internal/webmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("renders one marker per success, centered on the mean", func(t *testing.T) {
		report := models.NewPipelineReport()
		report.Append(models.GeocodeResult{
			Record:      models.AddressRecord{AccountID: "ACC001", Street: "1600 Amphitheatre Parkway"},
			Coordinates: &models.Coordinates{Latitude: 37.0, Longitude: -122.0},
			Status:      models.StatusSuccess,
		})
		report.Append(models.GeocodeResult{
			Record:      models.AddressRecord{AccountID: "ACC002", Street: "1 Apple Park Way"},
			Coordinates: &models.Coordinates{Latitude: 39.0, Longitude: -120.0},
			Status:      models.StatusSuccess,
		})
		report.Append(models.GeocodeResult{
			Record:      models.AddressRecord{AccountID: "ACC003", Street: "1 Nowhere Lane"},
			Status:      models.StatusFailed,
			ErrorDetail: "no match",
		})

		var buf bytes.Buffer
		require.NoError(t, webmap.Render(&buf, report))
		html := buf.String()

		assert.Contains(t, html, "leaflet")
		assert.Contains(t, html, "ACC001")
		assert.Contains(t, html, "ACC002")
		// Failed records never become markers.
		assert.NotContains(t, html, "ACC003")
		// Centered on the mean coordinate.
		assert.Contains(t, html, "38")
		assert.Contains(t, html, "-121")
	})

	t.Run("no successes yields ErrNoMarkers", func(t *testing.T) {
		report := models.NewPipelineReport()
		report.Append(models.GeocodeResult{
			Record:      models.AddressRecord{AccountID: "ACC001"},
			Status:      models.StatusFailed,
			ErrorDetail: "address fields are all empty",
		})

		var buf bytes.Buffer
		err := webmap.Render(&buf, report)

		require.ErrorIs(t, err, webmap.ErrNoMarkers)
		assert.Zero(t, buf.Len())
	})

	t.Run("empty report yields ErrNoMarkers", func(t *testing.T) {
		var buf bytes.Buffer
		err := webmap.Render(&buf, models.NewPipelineReport())

		require.ErrorIs(t, err, webmap.ErrNoMarkers)
	})
}
