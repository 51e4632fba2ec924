package tracker

import (
	"strings"

	"github.com/allenwsellars/Cycles/internal/models"
)

// AddBike appends a bike with a generated ID and selects it.
// A blank name leaves the state unchanged and returns ErrEmptyBikeName.
func AddBike(state models.AppState, name string) (models.AppState, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return state, ErrEmptyBikeName
	}

	next := state.Clone()
	bike := models.Bike{ID: newID(), Name: name}
	next.Bikes = append(next.Bikes, bike)
	next.SelectedBikeID = bike.ID
	return next, nil
}

// SelectBike sets the selected bike. The ID is not checked; callers offer a
// bounded choice of existing bikes.
func SelectBike(state models.AppState, bikeID string) models.AppState {
	next := state.Clone()
	next.SelectedBikeID = bikeID
	return next
}
