// Package webmap renders a pipeline report as a standalone Leaflet document:
// one marker per successfully geocoded record, centered on the mean coordinate.
package webmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/Houeta/address-mapper/internal/models"
)

// ErrNoMarkers is returned when the report holds no successfully geocoded
// records, so there is nothing to place on the map.
var ErrNoMarkers = errors.New("no successfully geocoded records to render")

// Marker is one map pin, serialized into the document as JSON.
type Marker struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	AccountID string  `json:"account_id"`
	Address   string  `json:"address"`
}

const defaultZoom = 10

type mapData struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
	Markers   template.JS
}

var mapTmpl = template.Must(template.New("map").Parse(mapHTML))

// Render writes the map document for the given report. The map is centered on
// the average of all successful coordinates, matching the summary view users
// expect for a batch of addresses.
func Render(w io.Writer, report *models.PipelineReport) error {
	succeeded := report.Succeeded()
	if len(succeeded) == 0 {
		return ErrNoMarkers
	}

	markers := make([]Marker, 0, len(succeeded))
	var sumLat, sumLon float64
	for _, res := range succeeded {
		markers = append(markers, Marker{
			Lat:       res.Coordinates.Latitude,
			Lon:       res.Coordinates.Longitude,
			AccountID: res.Record.AccountID,
			Address:   res.Record.FullAddress(),
		})
		sumLat += res.Coordinates.Latitude
		sumLon += res.Coordinates.Longitude
	}

	encoded, err := json.Marshal(markers)
	if err != nil {
		return fmt.Errorf("failed to encode markers: %w", err)
	}

	data := mapData{
		CenterLat: sumLat / float64(len(markers)),
		CenterLon: sumLon / float64(len(markers)),
		Zoom:      defaultZoom,
		Markers:   template.JS(encoded),
	}

	if err := mapTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}

	return nil
}

const mapHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Address Map</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style>
    html, body, #map { height: 100%; margin: 0; }
  </style>
</head>
<body>
  <div id="map"></div>
  <script>
    var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
    L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
      maxZoom: 19,
      attribution: '&copy; OpenStreetMap contributors'
    }).addTo(map);

    var markers = {{.Markers}};
    markers.forEach(function (m) {
      L.marker([m.lat, m.lon])
        .bindPopup('<b>Account ID:</b> ' + m.account_id + '<br>' +
                   '<b>Address:</b> ' + m.address + '<br>' +
                   '<b>Coordinates:</b> ' + m.lat.toFixed(6) + ', ' + m.lon.toFixed(6))
        .bindTooltip('Account: ' + m.account_id)
        .addTo(map);
    });
  </script>
</body>
</html>
`
