package forecaster

import (
	"path/filepath"

	"github.com/YuminosukeSato/scigo/core/model"

	pferrors "github.com/YuminosukeSato/panelforecast/pkg/errors"
)

// Save serializes the whole forecaster — configuration, schema, every
// per-series model, the id list and the end-index table — as one gob blob
// named PredictorFileName inside the given directory.
func (f *Forecaster) Save(dirPath string) error {
	if !f.Trained {
		return pferrors.NewNotFittedError("Forecaster", "Save")
	}
	path := filepath.Join(dirPath, PredictorFileName)
	if err := model.SaveModel(f, path); err != nil {
		return pferrors.Wrapf(err, "failed to save predictor to %q", path)
	}
	return nil
}

// Load restores a forecaster previously written by Save from the given
// directory. No validation happens beyond what the blob format enforces.
func Load(dirPath string) (*Forecaster, error) {
	path := filepath.Join(dirPath, PredictorFileName)
	f := &Forecaster{}
	if err := model.LoadModel(f, path); err != nil {
		return nil, pferrors.Wrapf(err, "failed to load predictor from %q", path)
	}
	return f, nil
}
