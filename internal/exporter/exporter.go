package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Houeta/address-mapper/internal/models"
)

// Header lists the output columns: the input shape plus latitude, longitude
// and status. Coordinates are left blank for ungeocoded rows; failed rows are
// never dropped.
var Header = []string{"account_id", "street", "city", "state", "zipcode", "latitude", "longitude", "status"}

// WriteCSV serializes the full report in input order. Coordinate values are
// formatted with the shortest exact representation, so an exported report
// re-imported through the parser preserves them bit for bit.
func WriteCSV(w io.Writer, report *models.PipelineReport) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, res := range report.Results {
		row := []string{
			res.Record.AccountID,
			res.Record.Street,
			res.Record.City,
			res.Record.State,
			res.Record.Zipcode,
			"",
			"",
			string(res.Status),
		}
		if res.Coordinates != nil {
			row[5] = strconv.FormatFloat(res.Coordinates.Latitude, 'f', -1, 64)
			row[6] = strconv.FormatFloat(res.Coordinates.Longitude, 'f', -1, 64)
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for account %s: %w", res.Record.AccountID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
