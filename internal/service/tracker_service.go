package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/allenwsellars/Cycles/internal/importer"
	"github.com/allenwsellars/Cycles/internal/metrics"
	"github.com/allenwsellars/Cycles/internal/models"
	"github.com/allenwsellars/Cycles/internal/storage"
	"github.com/allenwsellars/Cycles/internal/tracker"
)

// TrackerService owns the tracker state. It applies transitions from package
// tracker, persists the result after every mutation and only then commits it
// in memory, so a failed write leaves the service unchanged.
type TrackerService struct {
	store   storage.Store
	metrics *metrics.Collector

	mu    sync.Mutex
	state models.AppState
	form  tracker.FormState
}

// NewTrackerService loads the state from store and returns a service over it.
// collector may be nil.
func NewTrackerService(ctx context.Context, store storage.Store, collector *metrics.Collector) (*TrackerService, error) {
	state, outcome, err := storage.LoadState(ctx, store)
	if err != nil {
		slog.Error("Failed to load state", "error", err)
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	switch outcome {
	case storage.Seeded:
		slog.Info("No stored state, seeded default bike", "bike_id", state.SelectedBikeID)
	case storage.Recovered:
		slog.Warn("Stored state was not valid JSON, starting empty",
			"backup_key", storage.CorruptKey,
		)
	default:
		slog.Debug("State loaded",
			"bikes_count", len(state.Bikes),
			"records_count", len(state.ServiceRecords),
		)
	}

	s := &TrackerService{
		store:   store,
		metrics: collector,
		state:   state,
		form:    tracker.StartAddRecord(),
	}
	s.observeState()
	return s, nil
}

// State returns a copy of the current state.
func (s *TrackerService) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Form returns the current edit form.
func (s *TrackerService) Form() tracker.FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Records returns the selected bike's records, most recent first.
func (s *TrackerService) Records() []models.ServiceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tracker.VisibleRecords(s.state)
}

// AddBike creates a bike and selects it.
func (s *TrackerService) AddBike(ctx context.Context, name string) (models.Bike, error) {
	slog.Info("AddBike request received", "name", name)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := tracker.AddBike(s.state, name)
	if err == nil {
		err = s.commit(ctx, next)
	}
	s.observe("add_bike", err)
	if err != nil {
		slog.Error("AddBike failed", "error", err)
		return models.Bike{}, err
	}

	bike, _ := s.state.Bike(s.state.SelectedBikeID)
	slog.Info("Bike added", "bike_id", bike.ID, "name", bike.Name)
	return bike, nil
}

// SelectBike changes the selected bike. The form is reset because it may
// belong to the previously selected bike.
func (s *TrackerService) SelectBike(ctx context.Context, bikeID string) error {
	slog.Info("SelectBike request received", "bike_id", bikeID)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.commit(ctx, tracker.SelectBike(s.state, bikeID))
	s.observe("select_bike", err)
	if err != nil {
		slog.Error("SelectBike failed", "bike_id", bikeID, "error", err)
		return err
	}
	s.form = tracker.CancelEdit()
	return nil
}

// StartAddRecord resets the form for a new record.
func (s *TrackerService) StartAddRecord() tracker.FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = tracker.StartAddRecord()
	return s.form
}

// StartEditRecord prefills the form from the record with the given ID.
func (s *TrackerService) StartEditRecord(id string) (tracker.FormState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.state.Record(id)
	if !ok {
		return s.form, fmt.Errorf("%w: %s", tracker.ErrRecordNotFound, id)
	}
	s.form = tracker.StartEditRecord(rec)
	return s.form, nil
}

// CancelEdit discards the form.
func (s *TrackerService) CancelEdit() tracker.FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = tracker.CancelEdit()
	return s.form
}

// SaveRecord stores form as a new record, or as changes to the record being
// edited. On a validation error the form is kept with the user's input so it
// can be corrected; on success it is reset.
func (s *TrackerService) SaveRecord(ctx context.Context, form tracker.RecordForm) (models.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	editingID := s.form.EditingID
	slog.Info("SaveRecord request received",
		"editing_id", editingID,
		"month", form.DateMonth,
		"service_type", form.ServiceType,
	)
	s.form.Form = form

	next, err := tracker.SaveRecord(s.state, form, editingID)
	if err == nil {
		err = s.commit(ctx, next)
	}
	s.observe("save_record", err)
	if err != nil {
		if isInvalid(err) {
			slog.Warn("SaveRecord rejected", "error", err)
		} else {
			slog.Error("SaveRecord failed", "error", err)
		}
		return models.ServiceRecord{}, err
	}

	var rec models.ServiceRecord
	if editingID != "" {
		rec, _ = s.state.Record(editingID)
	} else {
		rec = s.state.ServiceRecords[len(s.state.ServiceRecords)-1]
	}
	s.form = tracker.StartAddRecord()

	slog.Info("Service record saved", "record_id", rec.ID, "bike_id", rec.BikeID, "date", rec.Date)
	return rec, nil
}

// DeleteRecord removes a record after c confirms it.
func (s *TrackerService) DeleteRecord(ctx context.Context, id string, c tracker.Confirmer) error {
	slog.Info("DeleteRecord request received", "record_id", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, form, err := tracker.DeleteRecord(s.state, s.form, id, c)
	if err == nil {
		err = s.commit(ctx, next)
	}
	s.observe("delete_record", err)
	if err != nil {
		if isInvalid(err) {
			slog.Warn("DeleteRecord rejected", "record_id", id, "error", err)
		} else {
			slog.Error("DeleteRecord failed", "record_id", id, "error", err)
		}
		return err
	}
	s.form = form

	slog.Info("Service record deleted", "record_id", id)
	return nil
}

// Import replaces all bikes and records with the ones in text.
// Malformed JSON fails with importer.ErrInvalidJSON and schema violations
// with *importer.SchemaError; in both cases nothing changes.
func (s *TrackerService) Import(ctx context.Context, text []byte) error {
	slog.Info("Import request received", "bytes", len(text))

	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := importer.Parse(text)
	var next models.AppState
	if err == nil {
		next, err = tracker.ImportReplace(s.state, parsed)
	}
	if err != nil {
		s.observe("import", err)
		if s.metrics != nil {
			s.metrics.ObserveImportFailure(err)
		}
		slog.Warn("Import rejected", "error", err)
		return err
	}

	err = s.commit(ctx, next)
	s.observe("import", err)
	if err != nil {
		slog.Error("Import failed", "error", err)
		return err
	}
	s.form = tracker.CancelEdit()

	slog.Info("Import successful",
		"bikes_count", len(next.Bikes),
		"records_count", len(next.ServiceRecords),
		"selected_bike_id", next.SelectedBikeID,
	)
	return nil
}

// Export returns the current state as indented JSON in the import format.
func (s *TrackerService) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := json.MarshalIndent(s.state.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return append(out, '\n'), nil
}

// commit persists next and makes it the current state. Callers hold s.mu.
func (s *TrackerService) commit(ctx context.Context, next models.AppState) error {
	if err := storage.SaveState(ctx, s.store, next); err != nil {
		return err
	}
	s.state = next
	s.observeState()
	return nil
}

func (s *TrackerService) observe(operation string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, err, isInvalid)
	}
}

func (s *TrackerService) observeState() {
	if s.metrics != nil {
		s.metrics.ObserveState(s.state)
	}
}

// isInvalid reports whether err was caused by user input rather than by the
// store.
func isInvalid(err error) bool {
	var schemaErr *importer.SchemaError
	switch {
	case errors.As(err, &schemaErr),
		errors.Is(err, importer.ErrInvalidJSON),
		errors.Is(err, tracker.ErrEmptyBikeName),
		errors.Is(err, tracker.ErrMissingMonth),
		errors.Is(err, tracker.ErrInvalidMonth),
		errors.Is(err, tracker.ErrMissingServiceType),
		errors.Is(err, tracker.ErrNoBikeSelected),
		errors.Is(err, tracker.ErrRecordNotFound),
		errors.Is(err, tracker.ErrNotConfirmed):
		return true
	}
	return false
}
