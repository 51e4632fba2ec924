package tracker

import (
	"github.com/allenwsellars/Cycles/internal/importer"
	"github.com/allenwsellars/Cycles/internal/models"
)

// ImportReplace replaces all bikes and records with the imported ones.
//
// parsed is a decoded JSON value (see importer.Parse). Nothing is merged. The
// selection becomes the imported selectedBikeId, else the first imported
// bike, else empty. On a validation error the state is returned unchanged
// together with the *importer.SchemaError.
func ImportReplace(state models.AppState, parsed any) (models.AppState, error) {
	next, err := importer.Extract(parsed)
	if err != nil {
		return state, err
	}
	if next.SelectedBikeID == "" && len(next.Bikes) > 0 {
		next.SelectedBikeID = next.Bikes[0].ID
	}
	return next, nil
}
