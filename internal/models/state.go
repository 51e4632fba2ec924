package models

// DefaultBikeName is the name of the placeholder bike seeded on first start.
const DefaultBikeName = "My Bike"

// AppState is the root object holding everything the tracker knows.
// It is persisted wholesale after every mutation and is also the
// import/export format.
type AppState struct {
	Bikes          []Bike          `json:"bikes"`
	ServiceRecords []ServiceRecord `json:"serviceRecords"`

	// SelectedBikeID may reference no bike (e.g., after importing an empty list).
	SelectedBikeID string `json:"selectedBikeId"`
}

// EmptyState returns a state with no bikes, no records and no selection.
func EmptyState() AppState {
	return AppState{
		Bikes:          []Bike{},
		ServiceRecords: []ServiceRecord{},
	}
}

// DefaultState returns the state used when nothing has been stored yet:
// one placeholder bike, selected, and no records.
func DefaultState(bikeID string) AppState {
	return AppState{
		Bikes:          []Bike{{ID: bikeID, Name: DefaultBikeName}},
		ServiceRecords: []ServiceRecord{},
		SelectedBikeID: bikeID,
	}
}

// Clone returns a deep copy of the state. Collections are never nil in the
// copy so they serialize as empty JSON arrays.
func (s AppState) Clone() AppState {
	out := AppState{
		Bikes:          make([]Bike, len(s.Bikes)),
		ServiceRecords: make([]ServiceRecord, len(s.ServiceRecords)),
		SelectedBikeID: s.SelectedBikeID,
	}
	copy(out.Bikes, s.Bikes)
	copy(out.ServiceRecords, s.ServiceRecords)
	return out
}

// Bike returns the bike with the given ID.
func (s AppState) Bike(id string) (Bike, bool) {
	for _, b := range s.Bikes {
		if b.ID == id {
			return b, true
		}
	}
	return Bike{}, false
}

// Record returns the service record with the given ID.
func (s AppState) Record(id string) (ServiceRecord, bool) {
	for _, r := range s.ServiceRecords {
		if r.ID == id {
			return r, true
		}
	}
	return ServiceRecord{}, false
}
