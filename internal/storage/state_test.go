package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allenwsellars/Cycles/internal/models"
	"github.com/allenwsellars/Cycles/internal/storage"
	"github.com/allenwsellars/Cycles/internal/storage/memory"
)

func TestLoadState_SeedsDefault(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	state, outcome, err := storage.LoadState(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, storage.Seeded, outcome)

	require.Len(t, state.Bikes, 1)
	assert.NotEmpty(t, state.Bikes[0].ID)
	assert.Equal(t, models.DefaultBikeName, state.Bikes[0].Name)
	assert.Equal(t, state.Bikes[0].ID, state.SelectedBikeID)
	assert.Empty(t, state.ServiceRecords)

	// The seeded state is persisted, so the next load sees the same bike.
	again, outcome, err := storage.LoadState(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, storage.Loaded, outcome)
	assert.Equal(t, state, again)
}

func TestLoadState_RecoversFromCorruptValue(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Put(ctx, storage.StateKey, []byte("{not json")))

	state, outcome, err := storage.LoadState(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, storage.Recovered, outcome)
	assert.Equal(t, models.EmptyState(), state)

	kept, err := store.Get(ctx, storage.CorruptKey)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(kept))
}

func TestLoadState_NormalizesNullCollections(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Put(ctx, storage.StateKey, []byte(`{"bikes":null,"selectedBikeId":"x"}`)))

	state, outcome, err := storage.LoadState(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, storage.Loaded, outcome)
	assert.NotNil(t, state.Bikes)
	assert.NotNil(t, state.ServiceRecords)
	assert.Equal(t, "x", state.SelectedBikeID)
}

type failingStore struct {
	*memory.Store
}

func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestSaveState(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, storage.SaveState(ctx, store, models.EmptyState()))

	raw, err := store.Get(ctx, storage.StateKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bikes":[],"serviceRecords":[],"selectedBikeId":""}`, string(raw))

	err = storage.SaveState(ctx, failingStore{memory.New()}, models.EmptyState())
	assert.ErrorContains(t, err, "disk full")
}

func TestSaveState_FieldNames(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	state := models.AppState{
		Bikes:          []models.Bike{{ID: "b1", Name: "A"}},
		ServiceRecords: []models.ServiceRecord{{ID: "r1", BikeID: "b1", Date: "01-2024", ServiceType: "Tune-up"}},
		SelectedBikeID: "b1",
	}
	require.NoError(t, storage.SaveState(ctx, store, state))

	raw, err := store.Get(ctx, storage.StateKey)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	rec := generic["serviceRecords"].([]any)[0].(map[string]any)
	for _, field := range []string{"id", "bikeId", "date", "serviceType", "notes"} {
		assert.Contains(t, rec, field)
	}
}

func TestLoadOutcome_String(t *testing.T) {
	assert.Equal(t, "loaded", storage.Loaded.String())
	assert.Equal(t, "seeded", storage.Seeded.String())
	assert.Equal(t, "recovered", storage.Recovered.String())
}
