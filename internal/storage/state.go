package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/allenwsellars/Cycles/internal/models"
)

// LoadOutcome describes how LoadState produced its state.
type LoadOutcome int

const (
	// Loaded means the stored state was read and decoded.
	Loaded LoadOutcome = iota

	// Seeded means nothing was stored and the default state was created.
	Seeded

	// Recovered means the stored value was not valid JSON. The empty state
	// was returned and the bad value was copied to CorruptKey.
	Recovered
)

func (o LoadOutcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case Seeded:
		return "seeded"
	case Recovered:
		return "recovered"
	default:
		return fmt.Sprintf("LoadOutcome(%d)", int(o))
	}
}

// CorruptKey holds the last state value that failed to decode.
const CorruptKey = StateKey + ".corrupt"

// LoadState reads the tracker state from the store.
//
// A missing value seeds the default state (one placeholder bike, selected)
// and persists it. A value that is not valid JSON yields the empty state; the
// raw value is preserved under CorruptKey so it can be recovered by hand.
func LoadState(ctx context.Context, s Store) (models.AppState, LoadOutcome, error) {
	raw, err := s.Get(ctx, StateKey)
	if errors.Is(err, ErrNotFound) {
		state := models.DefaultState(uuid.New().String())
		if err := SaveState(ctx, s, state); err != nil {
			return models.AppState{}, Seeded, err
		}
		return state, Seeded, nil
	}
	if err != nil {
		return models.AppState{}, Loaded, fmt.Errorf("failed to read state: %w", err)
	}

	var state models.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		if err := s.Put(ctx, CorruptKey, raw); err != nil {
			return models.AppState{}, Recovered, fmt.Errorf("failed to preserve corrupt state: %w", err)
		}
		return models.EmptyState(), Recovered, nil
	}

	// Normalize null collections so they encode back as [].
	return state.Clone(), Loaded, nil
}

// SaveState writes the whole tracker state to the store.
func SaveState(ctx context.Context, s Store, state models.AppState) error {
	raw, err := json.Marshal(state.Clone())
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.Put(ctx, StateKey, raw); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
