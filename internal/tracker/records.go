package tracker

import (
	"slices"
	"strings"

	"github.com/allenwsellars/Cycles/internal/models"
	"github.com/allenwsellars/Cycles/internal/month"
)

// Confirmer asks the user to confirm an irreversible action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// DeletePrompt is the question asked before a record is deleted.
const DeletePrompt = "Delete this service record? This cannot be undone."

// SaveRecord validates the form and stores it.
//
// With an empty editingID a new record is appended for the selected bike.
// Otherwise the record with that ID gets the form's date, service type and
// notes while keeping its ID and bike. Notes are trimmed.
func SaveRecord(state models.AppState, form RecordForm, editingID string) (models.AppState, error) {
	date := month.ToStored(strings.TrimSpace(form.DateMonth))
	if date == "" {
		return state, ErrMissingMonth
	}
	if !month.ValidUI(strings.TrimSpace(form.DateMonth)) {
		return state, ErrInvalidMonth
	}
	serviceType := strings.TrimSpace(form.ServiceType)
	if serviceType == "" {
		return state, ErrMissingServiceType
	}
	notes := strings.TrimSpace(form.Notes)

	next := state.Clone()

	if editingID != "" {
		i := slices.IndexFunc(next.ServiceRecords, func(r models.ServiceRecord) bool {
			return r.ID == editingID
		})
		if i < 0 {
			return state, ErrRecordNotFound
		}
		next.ServiceRecords[i].Date = date
		next.ServiceRecords[i].ServiceType = serviceType
		next.ServiceRecords[i].Notes = notes
		return next, nil
	}

	if _, ok := state.Bike(state.SelectedBikeID); !ok {
		return state, ErrNoBikeSelected
	}
	next.ServiceRecords = append(next.ServiceRecords, models.ServiceRecord{
		ID:          newID(),
		BikeID:      state.SelectedBikeID,
		Date:        date,
		ServiceType: serviceType,
		Notes:       notes,
	})
	return next, nil
}

// DeleteRecord removes the record with the given ID after confirmation.
// If the form was editing that record it is reset. When the user declines,
// the state and form are returned unchanged with ErrNotConfirmed.
func DeleteRecord(state models.AppState, form FormState, id string, c Confirmer) (models.AppState, FormState, error) {
	if _, ok := state.Record(id); !ok {
		return state, form, ErrRecordNotFound
	}
	if !c.Confirm(DeletePrompt) {
		return state, form, ErrNotConfirmed
	}

	next := state.Clone()
	next.ServiceRecords = slices.DeleteFunc(next.ServiceRecords, func(r models.ServiceRecord) bool {
		return r.ID == id
	})
	if form.EditingID == id {
		form = CancelEdit()
	}
	return next, form, nil
}

// VisibleRecords returns the selected bike's records, most recent month
// first. Records in the same month keep their stored order.
func VisibleRecords(state models.AppState) []models.ServiceRecord {
	var out []models.ServiceRecord
	for _, r := range state.ServiceRecords {
		if r.BikeID == state.SelectedBikeID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b models.ServiceRecord) int {
		return strings.Compare(month.SortKey(b.Date), month.SortKey(a.Date))
	})
	return out
}
