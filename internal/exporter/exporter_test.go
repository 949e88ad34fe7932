package exporter_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/Houeta/address-mapper/internal/exporter"
	"github.com/Houeta/address-mapper/internal/models"
	"github.com/Houeta/address-mapper/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.PipelineReport {
	report := models.NewPipelineReport()
	report.Append(models.GeocodeResult{
		Record: models.AddressRecord{
			AccountID: "ACC001",
			Street:    "1600 Amphitheatre Parkway",
			City:      "Mountain View",
			State:     "CA",
			Zipcode:   "94043",
		},
		Coordinates: &models.Coordinates{Latitude: 37.4224764, Longitude: -122.0842499},
		Status:      models.StatusSuccess,
	})
	report.Append(models.GeocodeResult{
		Record: models.AddressRecord{
			AccountID: "ACC002",
			Street:    "1 Nowhere Lane",
			City:      "Atlantis",
			State:     "XX",
			Zipcode:   "00000",
		},
		Status:      models.StatusFailed,
		ErrorDetail: "address did not match any location",
	})
	report.State = models.StateCompleted
	return report
}

func TestWriteCSV(t *testing.T) {
	t.Run("writes all rows with the augmented header", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, exporter.WriteCSV(&buf, sampleReport()))

		rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, exporter.Header, rows[0])
		assert.Equal(t, "ACC001", rows[1][0])
		assert.Equal(t, "Success", rows[1][7])
		assert.Equal(t, "37.4224764", rows[1][5])
		assert.Equal(t, "-122.0842499", rows[1][6])

		// Failed rows stay in the output, with blank coordinates.
		assert.Equal(t, "ACC002", rows[2][0])
		assert.Equal(t, "Failed", rows[2][7])
		assert.Empty(t, rows[2][5])
		assert.Empty(t, rows[2][6])
	})

	t.Run("round-trips through the parser", func(t *testing.T) {
		defer filet.CleanUp(t)
		dir := filet.TmpDir(t, "")
		path := filepath.Join(dir, "geocoded_addresses.csv")

		out, err := os.Create(path)
		require.NoError(t, err)
		report := sampleReport()
		require.NoError(t, exporter.WriteCSV(out, report))
		require.NoError(t, out.Close())

		in, err := os.Open(path)
		require.NoError(t, err)
		defer in.Close()

		records, err := parser.Parse(in)
		require.NoError(t, err)
		require.Len(t, records, report.Len())
		for i, rec := range records {
			assert.Equal(t, report.Results[i].Record, rec)
		}

		// Coordinates and status survive the trip exactly for Success rows.
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
		require.NoError(t, err)

		lat, err := strconv.ParseFloat(rows[1][5], 64)
		require.NoError(t, err)
		lon, err := strconv.ParseFloat(rows[1][6], 64)
		require.NoError(t, err)
		assert.Equal(t, report.Results[0].Coordinates.Latitude, lat)
		assert.Equal(t, report.Results[0].Coordinates.Longitude, lon)
		assert.Equal(t, string(report.Results[0].Status), rows[1][7])
	})

	t.Run("empty report writes only the header", func(t *testing.T) {
		var buf bytes.Buffer
		report := models.NewPipelineReport()

		require.NoError(t, exporter.WriteCSV(&buf, report))

		rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, exporter.Header, rows[0])
	})
}
