// Package models defines the core domain models for Cycles.
//
// # Models
//
//   - Bike: a bicycle the user tracks maintenance for
//   - ServiceRecord: one maintenance entry for a bike, dated by month
//   - AppState: the single root object persisted as one JSON blob
//
// The JSON field names are part of the import/export format and of the
// persisted blob, so they must not change.
//
// # Relationships
//
// Records reference bikes by ID string (ServiceRecord.BikeID) rather than by
// pointer. The reference is checked when a record is created and when state is
// imported; it is not re-validated continuously.
package models
