package tracker

import (
	"github.com/allenwsellars/Cycles/internal/models"
	"github.com/allenwsellars/Cycles/internal/month"
)

// RecordForm holds the user's input for a service record.
type RecordForm struct {
	// DateMonth is in UI "YYYY-MM" form.
	DateMonth   string
	ServiceType string
	Notes       string
}

// FormState is the edit form: what it is prefilled with and which record,
// if any, it is editing.
type FormState struct {
	// EditingID is the ID of the record being edited, or empty when adding.
	EditingID string
	Form      RecordForm
}

// Editing reports whether the form is editing an existing record.
func (f FormState) Editing() bool {
	return f.EditingID != ""
}

// StartAddRecord returns an empty form for a new record.
func StartAddRecord() FormState {
	return FormState{}
}

// StartEditRecord returns a form prefilled from an existing record.
func StartEditRecord(rec models.ServiceRecord) FormState {
	return FormState{
		EditingID: rec.ID,
		Form: RecordForm{
			DateMonth:   month.ToUI(rec.Date),
			ServiceType: rec.ServiceType,
			Notes:       rec.Notes,
		},
	}
}

// CancelEdit discards the form and returns to adding a new record.
func CancelEdit() FormState {
	return StartAddRecord()
}
