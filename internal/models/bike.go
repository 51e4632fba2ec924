package models

// Bike represents a tracked bicycle.
// Bikes are created by the user and are only removed by a full import.
type Bike struct {
	// ID is the unique identifier for the bike (UUID format when generated).
	ID string `json:"id"`

	// Name is the display name of the bike (e.g., "Gravel Bike").
	Name string `json:"name"`
}
