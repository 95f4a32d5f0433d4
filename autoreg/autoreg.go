// Package autoreg implements a recursive autoregressive forecaster for a
// single time series on top of SciGo's gradient-boosted trees.
//
// Training turns the series into a supervised problem: each row's features
// are lagged target values (optionally followed by exogenous covariates)
// and its label is the current target value. Forecasting walks the horizon
// one step at a time, feeding each prediction back into the lag window so
// that multi-step forecasts continue seamlessly from the training history.
package autoreg

import (
	"sort"

	"github.com/YuminosukeSato/scigo/sklearn/lightgbm"
	"gonum.org/v1/gonum/mat"

	pferrors "github.com/YuminosukeSato/panelforecast/pkg/errors"
)

// Config holds the lag specification and the gradient-boosting parameters
// for one series model. The zero value of a boosting field defers to the
// trainer's default.
type Config struct {
	// Lags are the lag offsets used as predictors; offset 1 is t-1.
	Lags []int
	// NumIterations is the number of boosted trees to fit.
	NumIterations int
	// NumLeaves is the maximum number of leaves per tree.
	NumLeaves int
	// MaxDepth limits tree depth; <= 0 means no limit.
	MaxDepth int
	// LearningRate is the boosting learning rate.
	LearningRate float64
	// MinDataInLeaf is the minimum number of samples per leaf.
	MinDataInLeaf int
	// BaggingFraction and BaggingFreq enable row subsampling
	// (random-forest-style training when combined).
	BaggingFraction float64
	BaggingFreq     int
	// Seed is the random seed threaded into the trainer. Training is
	// always run in deterministic mode so a fixed seed is reproducible.
	Seed int
	// Verbosity controls trainer verbosity.
	Verbosity int
}

// LagRange returns the lag offsets 1..n.
func LagRange(n int) []int {
	lags := make([]int, n)
	for i := range lags {
		lags[i] = i + 1
	}
	return lags
}

// Forecaster is a single-series autoregressive forecaster. All state lives
// in exported fields so a fitted forecaster round-trips through gob.
type Forecaster struct {
	// Lags are the lag offsets, sorted ascending.
	Lags []int
	// Params are the boosting parameters used at fit time.
	Params lightgbm.TrainingParams
	// Model is the trained ensemble; nil until Fit succeeds.
	Model *lightgbm.Model
	// Window holds the last MaxLag() training observations; it seeds the
	// recursion at forecast time.
	Window []float64
	// TrainRows is the number of rows the model was fitted on.
	TrainRows int
	// NumExog is the number of exogenous covariate columns seen at fit
	// time; Forecast requires the same number.
	NumExog int
	// Fitted reports whether Fit has completed successfully.
	Fitted bool
}

// New creates a forecaster from a config. Lag offsets are deduplicated,
// sorted ascending and must all be >= 1.
func New(cfg Config) (*Forecaster, error) {
	if len(cfg.Lags) == 0 {
		return nil, pferrors.NewValidationError("lags", "must not be empty", cfg.Lags)
	}
	seen := make(map[int]bool, len(cfg.Lags))
	lags := make([]int, 0, len(cfg.Lags))
	for _, lag := range cfg.Lags {
		if lag < 1 {
			return nil, pferrors.NewValidationError("lags", "offsets must be >= 1", lag)
		}
		if !seen[lag] {
			seen[lag] = true
			lags = append(lags, lag)
		}
	}
	sort.Ints(lags)

	return &Forecaster{
		Lags: lags,
		Params: lightgbm.TrainingParams{
			NumIterations:   cfg.NumIterations,
			LearningRate:    cfg.LearningRate,
			NumLeaves:       cfg.NumLeaves,
			MaxDepth:        cfg.MaxDepth,
			MinDataInLeaf:   cfg.MinDataInLeaf,
			BaggingFraction: cfg.BaggingFraction,
			BaggingFreq:     cfg.BaggingFreq,
			Objective:       "regression",
			Seed:            cfg.Seed,
			Deterministic:   true,
			Verbosity:       cfg.Verbosity,
		},
	}, nil
}

// MaxLag returns the largest lag offset.
func (f *Forecaster) MaxLag() int {
	return f.Lags[len(f.Lags)-1]
}

// IsFitted reports whether the forecaster has been fitted.
func (f *Forecaster) IsFitted() bool {
	return f.Fitted
}

// Fit trains the boosted model on the series. exog may be nil; when given
// it must have one row per observation, aligned with y.
func (f *Forecaster) Fit(y []float64, exog *mat.Dense) error {
	n := len(y)
	maxLag := f.MaxLag()
	if n < maxLag+1 {
		return pferrors.NewEmptySeriesError("", n, maxLag+1)
	}

	numExog := 0
	if exog != nil {
		er, ec := exog.Dims()
		if er != n {
			return pferrors.NewDimensionError("Fit", n, er, 0)
		}
		numExog = ec
	}

	rows := n - maxLag
	features := len(f.Lags) + numExog
	X := mat.NewDense(rows, features, nil)
	label := mat.NewDense(rows, 1, nil)
	for t := maxLag; t < n; t++ {
		r := t - maxLag
		for j, lag := range f.Lags {
			X.Set(r, j, y[t-lag])
		}
		for k := 0; k < numExog; k++ {
			X.Set(r, len(f.Lags)+k, exog.At(t, k))
		}
		label.Set(r, 0, y[t])
	}

	trainer := lightgbm.NewTrainer(f.Params)
	if err := trainer.Fit(X, label); err != nil {
		return pferrors.Wrap(err, "autoreg: training failed")
	}

	f.Model = trainer.GetModel()
	f.Window = append([]float64(nil), y[n-maxLag:]...)
	f.TrainRows = n
	f.NumExog = numExog
	f.Fitted = true
	return nil
}

// Forecast produces a forecast of the given length. When the model was
// fitted with exogenous covariates, exog must carry one row per step with
// the same column count seen at fit time; otherwise exog is ignored.
func (f *Forecaster) Forecast(steps int, exog *mat.Dense) ([]float64, error) {
	if !f.Fitted {
		return nil, pferrors.NewNotFittedError("autoreg.Forecaster", "Forecast")
	}
	if steps <= 0 {
		return nil, pferrors.NewValueError("Forecast", "steps must be positive")
	}
	if f.NumExog > 0 {
		if exog == nil {
			return nil, pferrors.NewDimensionError("Forecast", f.NumExog, 0, 1)
		}
		er, ec := exog.Dims()
		if ec != f.NumExog {
			return nil, pferrors.NewDimensionError("Forecast", f.NumExog, ec, 1)
		}
		if er != steps {
			return nil, pferrors.NewDimensionError("Forecast", steps, er, 0)
		}
	}

	window := append([]float64(nil), f.Window...)
	preds := make([]float64, steps)
	features := make([]float64, len(f.Lags)+f.NumExog)
	for step := 0; step < steps; step++ {
		for j, lag := range f.Lags {
			features[j] = window[len(window)-lag]
		}
		if f.NumExog > 0 {
			for k := 0; k < f.NumExog; k++ {
				features[len(f.Lags)+k] = exog.At(step, k)
			}
		}
		out := f.Model.PredictSingle(features, -1)
		preds[step] = out[0]
		window = append(window, out[0])
	}
	return preds, nil
}
