// Package panelforecast provides multi-series gradient-boosted forecasting
// for long-format panel data.
//
// A panel holds many time series stacked by an identifier column. The
// forecaster partitions the panel by id, trains one autoregressive
// gradient-boosted model per series (via SciGo's LightGBM implementation),
// and produces multi-step-ahead forecasts with optional exogenous
// covariates. The whole forecaster — every per-series model, the series id
// list and the per-series end indices — saves and loads as a single unit.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/panelforecast/dataset"
//	    "github.com/YuminosukeSato/panelforecast/forecaster"
//	    "github.com/YuminosukeSato/panelforecast/schema"
//	)
//
//	func main() {
//	    sch := &schema.ForecastingSchema{
//	        IDCol:          "series_id",
//	        TimeCol:        "date",
//	        TimeColType:    schema.Date,
//	        Target:         "sales",
//	        ForecastLength: 12,
//	    }
//	    history, err := dataset.ReadCSV("train.csv", sch)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    model, err := forecaster.TrainPredictor(history, sch, forecaster.DefaultConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    future, err := dataset.ReadCSV("future.csv", sch)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    out, err := model.Predict(future, "prediction")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out.NumRows(), "forecast rows")
//	}
//
// # Packages
//
//   - forecaster: the multi-series wrapper (fit, predict, save, load)
//   - autoreg: single-series recursive autoregressive forecaster
//   - dataset: long-format panel frame with CSV I/O
//   - schema: panel column roles and forecast horizon
//   - metrics: forecast accuracy metrics (sMAPE, WAPE, MASE)
//   - pkg/errors, pkg/log: structured errors and logging
package panelforecast
