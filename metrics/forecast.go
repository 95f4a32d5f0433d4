// Package metrics provides forecast accuracy metrics that complement
// SciGo's regression metrics: symmetric MAPE, weighted APE and mean
// absolute scaled error.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/panelforecast/pkg/errors"
)

// SMAPE computes the symmetric mean absolute percentage error, in percent:
// (100/n) * Σ 2|F-A| / (|A|+|F|). Terms with a zero denominator are
// skipped; if every term has a zero denominator an error is returned.
func SMAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("SMAPE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("SMAPE", n, yPred.Len(), 0)
	}

	var sum float64
	valid := 0
	for i := 0; i < n; i++ {
		a := yTrue.AtVec(i)
		f := yPred.AtVec(i)
		denom := math.Abs(a) + math.Abs(f)
		if denom == 0 {
			continue
		}
		sum += 2 * math.Abs(f-a) / denom
		valid++
	}
	if valid == 0 {
		return 0, errors.Newf("SMAPE: all terms have zero denominator")
	}
	return (sum / float64(valid)) * 100, nil
}

// WAPE computes the weighted absolute percentage error, in percent:
// 100 * Σ|A-F| / Σ|A|.
func WAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("WAPE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("WAPE", n, yPred.Len(), 0)
	}

	var num, denom float64
	for i := 0; i < n; i++ {
		num += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
		denom += math.Abs(yTrue.AtVec(i))
	}
	if denom == 0 {
		return 0, errors.Newf("WAPE: sum of absolute actuals is zero")
	}
	return (num / denom) * 100, nil
}

// MASE computes the mean absolute scaled error: the forecast MAE divided
// by the in-sample MAE of the one-step naive forecast over the training
// series.
func MASE(yTrue, yPred *mat.VecDense, yTrain []float64) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MASE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MASE", n, yPred.Len(), 0)
	}
	if len(yTrain) < 2 {
		return 0, errors.NewValueError("MASE", "training series needs at least 2 observations")
	}

	var mae float64
	for i := 0; i < n; i++ {
		mae += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	mae /= float64(n)

	var naive float64
	for i := 1; i < len(yTrain); i++ {
		naive += math.Abs(yTrain[i] - yTrain[i-1])
	}
	naive /= float64(len(yTrain) - 1)
	if naive == 0 {
		return 0, errors.Newf("MASE: naive forecast error is zero (constant training series)")
	}
	return mae / naive, nil
}
