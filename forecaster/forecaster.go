// Package forecaster multiplexes a single-series autoregressive
// gradient-boosted forecaster across the many series of a long-format
// panel. One independent model is trained per series id; the whole wrapper
// (configuration, per-series models, series id list, end indices) fits,
// predicts and persists as a single unit.
package forecaster

import (
	"github.com/YuminosukeSato/scigo/sklearn/lightgbm"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/panelforecast/autoreg"
	"github.com/YuminosukeSato/panelforecast/dataset"
	pferrors "github.com/YuminosukeSato/panelforecast/pkg/errors"
	"github.com/YuminosukeSato/panelforecast/pkg/log"
	"github.com/YuminosukeSato/panelforecast/schema"
)

// BoosterType selects the boosting variant of the underlying trees.
type BoosterType string

const (
	// GBDT is traditional gradient boosting.
	GBDT BoosterType = "gbdt"
	// DART selects dropout-style boosting. The underlying trainer exposes
	// no dropout parameters, so training currently matches GBDT; the
	// variant is only recorded on the fitted model.
	DART BoosterType = "dart"
	// RandomForest trains with row bagging.
	RandomForest BoosterType = "rf"
)

// Config holds the construction-time configuration of a Forecaster. It is
// fixed for the lifetime of the instance.
type Config struct {
	// NumIterations is the number of boosted trees per series model.
	NumIterations int
	// Booster is the boosting variant.
	Booster BoosterType
	// NumLeaves is the maximum number of leaves per tree.
	NumLeaves int
	// MaxDepth limits tree depth; <= 0 means no limit.
	MaxDepth int
	// LearningRate is the boosting learning rate.
	LearningRate float64
	// Lags uses lag offsets 1..Lags when LagOffsets is empty.
	Lags int
	// LagOffsets, when non-empty, is the explicit set of lag offsets.
	LagOffsets []int
	// UseExogenous enables covariates as exogenous predictors.
	UseExogenous bool
	// Verbosity controls trainer verbosity.
	Verbosity int
	// Seed is threaded into every per-series trainer; no process-global
	// random state is touched.
	Seed int
	// HistoryForecastRatio, when positive, truncates each series' training
	// history to ForecastLength * HistoryForecastRatio most-recent rows.
	HistoryForecastRatio int
	// LagsForecastRatio, when positive, overrides the lag specification
	// with lags 1..(ForecastLength * LagsForecastRatio).
	LagsForecastRatio int
}

// DefaultConfig returns the default forecaster configuration.
func DefaultConfig() Config {
	return Config{
		NumIterations: 100,
		Booster:       GBDT,
		NumLeaves:     31,
		MaxDepth:      -1,
		LearningRate:  0.1,
		Lags:          20,
		UseExogenous:  true,
		Verbosity:     -1,
	}
}

// PredictorFileName is the file the forecaster persists to inside a model
// directory.
const PredictorFileName = "predictor.gob"

// Forecaster trains one autoregressive regression model per series id in a
// panel and forecasts each series recursively. All persistent state lives
// in exported fields so a fitted instance round-trips through gob.
type Forecaster struct {
	// Config is the construction-time configuration.
	Config Config
	// Schema describes the panel columns.
	Schema *schema.ForecastingSchema
	// Models maps series id to its trained model. Fit replaces the whole
	// mapping; it is never partially updated.
	Models map[string]*autoreg.Forecaster
	// SeriesIDs records the ids in the order they were first encountered
	// during Fit; Predict iterates in this order.
	SeriesIDs []string
	// EndIndex maps series id to the number of training rows used for it.
	// Forward rows for an id continue the row index exactly at this
	// offset, so lag windows align continuously with training history.
	// Every id in Models has an entry here, and vice versa.
	EndIndex map[string]int
	// FutureCovariates is the covariate name list resolved at fit time
	// (schema covariates plus any calendar-derived columns).
	FutureCovariates []string
	// HistoryLength, when positive, is the per-series training history cap
	// resolved from HistoryForecastRatio at construction.
	HistoryLength int
	// Trained reports whether Fit has completed successfully.
	Trained bool

	// dropped holds the ids silently omitted by the last Predict call.
	dropped []string
}

// New creates an unfitted forecaster for the given schema. The derived
// configuration conveniences (history and lag ratios) are resolved here
// against the schema's forecast length.
func New(sch *schema.ForecastingSchema, cfg Config) (*Forecaster, error) {
	if err := sch.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Booster {
	case GBDT, DART, RandomForest:
	case "":
		cfg.Booster = GBDT
	default:
		return nil, pferrors.NewValidationError("booster", "must be one of gbdt, dart, rf", cfg.Booster)
	}
	if len(cfg.LagOffsets) == 0 && cfg.Lags <= 0 && cfg.LagsForecastRatio <= 0 {
		return nil, pferrors.NewValidationError("lags", "must be positive", cfg.Lags)
	}

	f := &Forecaster{
		Config: cfg,
		Schema: sch,
	}
	if cfg.HistoryForecastRatio > 0 {
		f.HistoryLength = sch.ForecastLength * cfg.HistoryForecastRatio
	}
	if cfg.LagsForecastRatio > 0 {
		f.Config.Lags = sch.ForecastLength * cfg.LagsForecastRatio
		f.Config.LagOffsets = nil
	}
	return f, nil
}

// IsFitted reports whether the forecaster has been fitted.
func (f *Forecaster) IsFitted() bool {
	return f.Trained
}

// DroppedSeriesIDs returns the ids that were present in the input of the
// last Predict call but had no trained model and were omitted from the
// output.
func (f *Forecaster) DroppedSeriesIDs() []string {
	return append([]string(nil), f.dropped...)
}

func (f *Forecaster) lagOffsets() []int {
	if len(f.Config.LagOffsets) > 0 {
		return f.Config.LagOffsets
	}
	return autoreg.LagRange(f.Config.Lags)
}

func (f *Forecaster) seriesConfig() autoreg.Config {
	cfg := autoreg.Config{
		Lags:          f.lagOffsets(),
		NumIterations: f.Config.NumIterations,
		NumLeaves:     f.Config.NumLeaves,
		MaxDepth:      f.Config.MaxDepth,
		LearningRate:  f.Config.LearningRate,
		Seed:          f.Config.Seed,
		Verbosity:     f.Config.Verbosity,
	}
	if f.Config.Booster == RandomForest {
		// LightGBM's rf mode is bagging without shrinkage tricks; row
		// subsampling on every iteration approximates it here.
		cfg.BaggingFraction = 0.9
		cfg.BaggingFreq = 1
	}
	return cfg
}

// Fit trains one model per series id in the panel. The previous model
// mapping, id list and end-index table are fully replaced; there is no
// partial update. A failure on any series aborts the whole call and leaves
// the forecaster state unchanged.
func (f *Forecaster) Fit(history *dataset.Frame, sch *schema.ForecastingSchema) error {
	if err := sch.Validate(); err != nil {
		return err
	}

	working := history.Copy()
	covariates, err := f.deriveCalendarCovariates(working, sch, true)
	if err != nil {
		return err
	}

	groups, err := working.GroupByString(sch.IDCol)
	if err != nil {
		return err
	}

	logger := log.GetLoggerWithName("forecaster")

	models := make(map[string]*autoreg.Forecaster, len(groups))
	endIndex := make(map[string]int, len(groups))
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		series := g.Frame
		if f.HistoryLength > 0 {
			series = series.Tail(f.HistoryLength)
		}

		target, err := series.FloatColumn(sch.Target)
		if err != nil {
			return pferrors.Wrapf(err, "Fit: series %q", g.Key)
		}

		var exog *mat.Dense
		if f.Config.UseExogenous && len(covariates) > 0 {
			exog, err = series.SelectMatrix(covariates)
			if err != nil {
				return pferrors.Wrapf(err, "Fit: series %q", g.Key)
			}
		}

		model, err := autoreg.New(f.seriesConfig())
		if err != nil {
			return err
		}
		if err := model.Fit(target, exog); err != nil {
			return pferrors.Wrapf(err, "Fit: series %q", g.Key)
		}
		model.Model.BoostingType = lightgbm.BoostingType(f.Config.Booster)

		models[g.Key] = model
		endIndex[g.Key] = series.NumRows()
		ids = append(ids, g.Key)

		logger.Debug().
			Str("series_id", g.Key).
			Int("rows", series.NumRows()).
			Msg("fitted series model")
	}

	// Commit only after every series trained; a failure above leaves the
	// previous fit (schema included) fully intact.
	f.Schema = sch
	f.Models = models
	f.EndIndex = endIndex
	f.SeriesIDs = ids
	f.FutureCovariates = covariates
	f.Trained = true

	logger.Info().
		Int("series", len(ids)).
		Int("covariates", len(covariates)).
		Msg("fit completed")
	return nil
}

// Predict forecasts every known series in the test panel. Each forward
// frame gets one forecast value per input row, written into the target
// column, which is then renamed to predictionColName. Series ids that were
// never seen during Fit are dropped from the output without error; they
// are logged and available through DroppedSeriesIDs.
func (f *Forecaster) Predict(testData *dataset.Frame, predictionColName string) (*dataset.Frame, error) {
	if !f.Trained {
		return nil, pferrors.NewNotFittedError("Forecaster", "Predict")
	}

	working := testData.Copy()
	covariates, err := f.deriveCalendarCovariates(working, f.Schema, false)
	if err != nil {
		return nil, err
	}

	groups, err := working.GroupByString(f.Schema.IDCol)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*dataset.Frame, len(groups))
	logger := log.GetLoggerWithName("forecaster")
	f.dropped = f.dropped[:0]
	for _, g := range groups {
		if _, ok := f.Models[g.Key]; !ok {
			// No model trained for this id; the series is omitted from
			// the output, not an error.
			f.dropped = append(f.dropped, g.Key)
			logger.Warn().
				Str("series_id", g.Key).
				Msg("no trained model for series; dropping from forecast")
			continue
		}
		byID[g.Key] = g.Frame
	}

	frames := make([]*dataset.Frame, 0, len(f.SeriesIDs))
	for _, id := range f.SeriesIDs {
		forward, ok := byID[id]
		if !ok {
			return nil, pferrors.NewValueError("Predict", "series "+id+" missing from prediction input")
		}
		steps := forward.NumRows()

		var exog *mat.Dense
		if f.Config.UseExogenous && len(covariates) > 0 {
			exog, err = forward.SelectMatrix(covariates)
			if err != nil {
				return nil, pferrors.Wrapf(err, "Predict: series %q", id)
			}
		}

		forecast, err := f.Models[id].Forecast(steps, exog)
		if err != nil {
			return nil, pferrors.Wrapf(err, "Predict: series %q", id)
		}
		if err := forward.AddFloatColumn(f.Schema.Target, forecast); err != nil {
			return nil, pferrors.Wrapf(err, "Predict: series %q", id)
		}

		if err := forward.DropColumn(f.Schema.IDCol); err != nil {
			return nil, err
		}
		if err := forward.PrependStringColumn(f.Schema.IDCol, id); err != nil {
			return nil, err
		}
		frames = append(frames, forward)
	}

	out, err := dataset.Concat(frames...)
	if err != nil {
		return nil, err
	}
	if predictionColName != f.Schema.Target {
		if err := out.RenameColumn(f.Schema.Target, predictionColName); err != nil {
			return nil, err
		}
	}
	return out, nil
}
