package forecaster

import (
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/panelforecast/dataset"
	"github.com/YuminosukeSato/panelforecast/metrics"
	pferrors "github.com/YuminosukeSato/panelforecast/pkg/errors"
	"github.com/YuminosukeSato/panelforecast/schema"
)

// TrainPredictor instantiates a forecaster and fits it to the history.
func TrainPredictor(history *dataset.Frame, sch *schema.ForecastingSchema, cfg Config) (*Forecaster, error) {
	f, err := New(sch, cfg)
	if err != nil {
		return nil, err
	}
	if err := f.Fit(history, sch); err != nil {
		return nil, err
	}
	return f, nil
}

// PredictWithModel makes a forecast with a fitted forecaster.
func PredictWithModel(model *Forecaster, testData *dataset.Frame, predictionColName string) (*dataset.Frame, error) {
	return model.Predict(testData, predictionColName)
}

// SavePredictor saves a fitted forecaster, creating the directory if
// needed.
func SavePredictor(model *Forecaster, dirPath string) error {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return pferrors.Wrapf(err, "failed to create model directory %q", dirPath)
	}
	return model.Save(dirPath)
}

// LoadPredictor loads a forecaster from a model directory.
func LoadPredictor(dirPath string) (*Forecaster, error) {
	return Load(dirPath)
}

// EvaluatePredictor forecasts over a held-out panel that still carries the
// actual target values and returns the sMAPE of the forecasts against
// them. Series without a trained model are excluded, matching Predict.
func EvaluatePredictor(model *Forecaster, testData *dataset.Frame) (float64, error) {
	out, err := model.Predict(testData, "prediction")
	if err != nil {
		return 0, err
	}
	predicted, err := out.FloatColumn("prediction")
	if err != nil {
		return 0, err
	}

	// Actual values, concatenated in the same recorded id order the
	// forecast output uses.
	groups, err := testData.GroupByString(model.Schema.IDCol)
	if err != nil {
		return 0, err
	}
	byID := make(map[string][]float64, len(groups))
	for _, g := range groups {
		actual, err := g.Frame.FloatColumn(model.Schema.Target)
		if err != nil {
			return 0, pferrors.Wrapf(err, "EvaluatePredictor: series %q", g.Key)
		}
		byID[g.Key] = actual
	}
	var actual []float64
	for _, id := range model.SeriesIDs {
		actual = append(actual, byID[id]...)
	}
	if len(actual) != len(predicted) {
		return 0, pferrors.NewDimensionError("EvaluatePredictor", len(actual), len(predicted), 0)
	}

	return metrics.SMAPE(
		mat.NewVecDense(len(actual), actual),
		mat.NewVecDense(len(predicted), predicted),
	)
}
