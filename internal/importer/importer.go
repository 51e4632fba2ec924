// Package importer validates JSON data before it replaces the tracker state.
//
// Import text goes through two steps. Parse decodes the text and reports
// malformed JSON as ErrInvalidJSON. Validate then checks the decoded value
// against the schema and reports the first violation as a *SchemaError.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/allenwsellars/Cycles/internal/models"
)

// ErrInvalidJSON is returned by Parse when the text is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON, please check formatting")

// SchemaError describes the first schema violation found in an import.
type SchemaError struct {
	// Reason is the human-readable rule that was violated.
	Reason string

	// Collection is "bikes" or "serviceRecords" when the violation is tied to
	// an element, and empty for root-level violations.
	Collection string

	// Index is the position of the offending element in Collection, or -1.
	Index int

	// RecordID and BikeID identify the offending entities when known.
	RecordID string
	BikeID   string
}

func (e *SchemaError) Error() string {
	return "import failed: " + e.Reason
}

func rootError(reason string) *SchemaError {
	return &SchemaError{Reason: reason, Index: -1}
}

// Parse decodes import text into a generic JSON value.
func Parse(text []byte) (any, error) {
	var v any
	if err := json.Unmarshal(text, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return v, nil
}

// Validate checks a decoded JSON value against the import schema.
// It returns nil for a valid value and a *SchemaError for the first violation.
// Checks run in this order: root shape, bikes, service records, bike
// references, then ID uniqueness.
func Validate(v any) error {
	root, ok := v.(map[string]any)
	if !ok {
		return rootError("import is not a JSON object")
	}
	bikes, ok := root["bikes"].([]any)
	if !ok {
		return rootError("missing 'bikes' array")
	}
	records, ok := root["serviceRecords"].([]any)
	if !ok {
		return rootError("missing 'serviceRecords' array")
	}

	bikeIDs := make(map[string]bool, len(bikes))
	for i, el := range bikes {
		if err := validateBike(i, el); err != nil {
			return err
		}
		bikeIDs[el.(map[string]any)["id"].(string)] = true
	}

	for i, el := range records {
		if err := validateRecord(i, el); err != nil {
			return err
		}
	}

	for i, el := range records {
		r := el.(map[string]any)
		id, bikeID := r["id"].(string), r["bikeId"].(string)
		if !bikeIDs[bikeID] {
			return &SchemaError{
				Reason:     fmt.Sprintf("service record '%s' references unknown bikeId '%s'", id, bikeID),
				Collection: "serviceRecords",
				Index:      i,
				RecordID:   id,
				BikeID:     bikeID,
			}
		}
	}

	return checkUnique(bikes, records)
}

func validateBike(i int, el any) error {
	b, ok := el.(map[string]any)
	if !ok {
		return &SchemaError{Reason: "invalid bike entry", Collection: "bikes", Index: i}
	}
	for _, field := range []string{"id", "name"} {
		if !nonEmptyString(b[field]) {
			return &SchemaError{
				Reason:     fmt.Sprintf("bike is missing a string '%s'", field),
				Collection: "bikes",
				Index:      i,
				BikeID:     stringOrEmpty(b["id"]),
			}
		}
	}
	return nil
}

func validateRecord(i int, el any) error {
	r, ok := el.(map[string]any)
	if !ok {
		return &SchemaError{Reason: "invalid service record entry", Collection: "serviceRecords", Index: i}
	}
	for _, field := range []string{"id", "bikeId", "date", "serviceType"} {
		if !nonEmptyString(r[field]) {
			return &SchemaError{
				Reason:     fmt.Sprintf("service record is missing a string '%s'", field),
				Collection: "serviceRecords",
				Index:      i,
				RecordID:   stringOrEmpty(r["id"]),
			}
		}
	}
	if notes, present := r["notes"]; present && notes != nil {
		if _, ok := notes.(string); !ok {
			return &SchemaError{
				Reason:     "'notes' must be a string if present",
				Collection: "serviceRecords",
				Index:      i,
				RecordID:   r["id"].(string),
			}
		}
	}
	return nil
}

func checkUnique(bikes, records []any) error {
	seen := make(map[string]bool, len(bikes))
	for i, el := range bikes {
		id := el.(map[string]any)["id"].(string)
		if seen[id] {
			return &SchemaError{
				Reason:     fmt.Sprintf("duplicate bike id '%s'", id),
				Collection: "bikes",
				Index:      i,
				BikeID:     id,
			}
		}
		seen[id] = true
	}

	seen = make(map[string]bool, len(records))
	for i, el := range records {
		id := el.(map[string]any)["id"].(string)
		if seen[id] {
			return &SchemaError{
				Reason:     fmt.Sprintf("duplicate service record id '%s'", id),
				Collection: "serviceRecords",
				Index:      i,
				RecordID:   id,
			}
		}
		seen[id] = true
	}
	return nil
}

// Extract validates v and converts it into typed collections. The returned
// state's SelectedBikeID is the imported selectedBikeId when it is a non-empty
// string, and empty otherwise.
func Extract(v any) (models.AppState, error) {
	if err := Validate(v); err != nil {
		return models.AppState{}, err
	}
	root := v.(map[string]any)
	bikes := root["bikes"].([]any)
	records := root["serviceRecords"].([]any)

	out := models.AppState{
		Bikes:          make([]models.Bike, 0, len(bikes)),
		ServiceRecords: make([]models.ServiceRecord, 0, len(records)),
		SelectedBikeID: stringOrEmpty(root["selectedBikeId"]),
	}
	for _, el := range bikes {
		b := el.(map[string]any)
		out.Bikes = append(out.Bikes, models.Bike{
			ID:   b["id"].(string),
			Name: b["name"].(string),
		})
	}
	for _, el := range records {
		r := el.(map[string]any)
		out.ServiceRecords = append(out.ServiceRecords, models.ServiceRecord{
			ID:          r["id"].(string),
			BikeID:      r["bikeId"].(string),
			Date:        r["date"].(string),
			ServiceType: r["serviceType"].(string),
			Notes:       stringOrEmpty(r["notes"]),
		})
	}
	return out, nil
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}
