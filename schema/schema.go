// Package schema describes the column roles of a long-format panel: which
// column identifies the series, which carries the time index, which is the
// regression target, and which covariates are known in the future. A schema
// is immutable for the lifetime of a fitted forecaster.
package schema

import (
	"encoding/json"
	"os"

	pferrors "github.com/YuminosukeSato/panelforecast/pkg/errors"
)

// TimeColType enumerates the type of the time index column.
type TimeColType string

const (
	// Date is a calendar date without a time component, e.g. "2024-01-31".
	Date TimeColType = "DATE"
	// Datetime is a calendar date with a time component.
	Datetime TimeColType = "DATETIME"
	// Int is an integer step index.
	Int TimeColType = "INT"
	// Other is any time index the library treats as opaque.
	Other TimeColType = "OTHER"
)

// IsCalendar reports whether calendar covariates (year, month) can be
// derived from the time column.
func (t TimeColType) IsCalendar() bool {
	return t == Date || t == Datetime
}

// ForecastingSchema describes a panel dataset for forecasting.
type ForecastingSchema struct {
	// IDCol is the series identifier column.
	IDCol string `json:"id_col"`
	// TimeCol is the time index column.
	TimeCol string `json:"time_col"`
	// TimeColType is the type of the time index column.
	TimeColType TimeColType `json:"time_col_dtype"`
	// Target is the regression target column.
	Target string `json:"target"`
	// FutureCovariates are covariate columns whose values are known at
	// prediction time.
	FutureCovariates []string `json:"future_covariates"`
	// ForecastLength is the expected forecast horizon in steps.
	ForecastLength int `json:"forecast_length"`
}

// Load reads a schema from a JSON file.
func Load(path string) (*ForecastingSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pferrors.Wrapf(err, "failed to read schema file %q", path)
	}
	var s ForecastingSchema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, pferrors.Wrapf(err, "failed to parse schema file %q", path)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the schema names every required column and carries a
// positive horizon.
func (s *ForecastingSchema) Validate() error {
	if s.IDCol == "" {
		return pferrors.NewValidationError("id_col", "must not be empty", s.IDCol)
	}
	if s.TimeCol == "" {
		return pferrors.NewValidationError("time_col", "must not be empty", s.TimeCol)
	}
	if s.Target == "" {
		return pferrors.NewValidationError("target", "must not be empty", s.Target)
	}
	switch s.TimeColType {
	case Date, Datetime, Int, Other:
	case "":
		return pferrors.NewValidationError("time_col_dtype", "must not be empty", s.TimeColType)
	default:
		return pferrors.NewValidationError("time_col_dtype", "must be one of DATE, DATETIME, INT, OTHER", s.TimeColType)
	}
	if s.ForecastLength <= 0 {
		return pferrors.NewValidationError("forecast_length", "must be positive", s.ForecastLength)
	}
	for _, c := range s.FutureCovariates {
		if c == "" {
			return pferrors.NewValidationError("future_covariates", "must not contain empty names", s.FutureCovariates)
		}
	}
	return nil
}
