package models

import (
	"fmt"
	"strings"
)

// AddressRecord is one input row representing a single postal address to be
// geocoded. Records are immutable once read from input; the account ID is a
// unique key carried through to the output but never validated.
type AddressRecord struct {
	AccountID string // AccountID is the unique identifier of the row.
	Street    string // Street is the street address.
	City      string // City is the city name.
	State     string // State is the state or province.
	Zipcode   string // Zipcode is the ZIP or postal code.
}

// FullAddress builds the lookup query sent to the geocoding service.
func (r AddressRecord) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", r.Street, r.City, r.State, r.Zipcode)
}

// Empty reports whether every address field is blank. Such rows are kept by
// the parser and marked as unresolvable during the run.
func (r AddressRecord) Empty() bool {
	return strings.TrimSpace(r.Street) == "" &&
		strings.TrimSpace(r.City) == "" &&
		strings.TrimSpace(r.State) == "" &&
		strings.TrimSpace(r.Zipcode) == ""
}
