package models_test

import (
	"testing"

	"github.com/Houeta/address-mapper/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAddressRecord_FullAddress(t *testing.T) {
	rec := models.AddressRecord{
		AccountID: "ACC001",
		Street:    "1600 Amphitheatre Parkway",
		City:      "Mountain View",
		State:     "CA",
		Zipcode:   "94043",
	}

	assert.Equal(t, "1600 Amphitheatre Parkway, Mountain View, CA 94043", rec.FullAddress())
}

func TestAddressRecord_Empty(t *testing.T) {
	t.Run("all fields blank", func(t *testing.T) {
		rec := models.AddressRecord{AccountID: "ACC007"}
		assert.True(t, rec.Empty())
	})

	t.Run("whitespace only counts as blank", func(t *testing.T) {
		rec := models.AddressRecord{Street: "  ", City: "\t"}
		assert.True(t, rec.Empty())
	})

	t.Run("any address field present", func(t *testing.T) {
		rec := models.AddressRecord{City: "Cupertino"}
		assert.False(t, rec.Empty())
	})
}

func TestPipelineReport_Partitions(t *testing.T) {
	report := models.NewPipelineReport()
	assert.Equal(t, models.StateIdle, report.State)

	report.Append(models.GeocodeResult{
		Record:      models.AddressRecord{AccountID: "A"},
		Coordinates: &models.Coordinates{Latitude: 1, Longitude: 2},
		Status:      models.StatusSuccess,
	})
	report.Append(models.GeocodeResult{
		Record:      models.AddressRecord{AccountID: "B"},
		Status:      models.StatusFailed,
		ErrorDetail: "no match",
	})
	report.Append(models.GeocodeResult{
		Record:      models.AddressRecord{AccountID: "C"},
		Coordinates: &models.Coordinates{Latitude: 3, Longitude: 4},
		Status:      models.StatusSuccess,
	})

	assert.Equal(t, 3, report.Len())

	succeeded := report.Succeeded()
	if assert.Len(t, succeeded, 2) {
		assert.Equal(t, "A", succeeded[0].Record.AccountID)
		assert.Equal(t, "C", succeeded[1].Record.AccountID)
	}

	failed := report.Failed()
	if assert.Len(t, failed, 1) {
		assert.Equal(t, "B", failed[0].Record.AccountID)
	}
}
