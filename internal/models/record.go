package models

// ServiceRecord represents a single maintenance entry for a bike.
type ServiceRecord struct {
	// ID is the unique identifier for the record (UUID format when generated).
	ID string `json:"id"`

	// BikeID is the ID of the bike this record belongs to.
	BikeID string `json:"bikeId"`

	// Date is the month of the service in stored "MM-YYYY" form.
	// See package month for conversion to and from the "YYYY-MM" UI form.
	Date string `json:"date"`

	// ServiceType is free text describing the work (e.g., "Tune-up").
	ServiceType string `json:"serviceType"`

	// Notes is optional. The empty string means "no notes".
	Notes string `json:"notes"`
}
