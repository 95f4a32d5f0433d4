package forecaster

import (
	"time"

	"github.com/YuminosukeSato/panelforecast/dataset"
	pferrors "github.com/YuminosukeSato/panelforecast/pkg/errors"
	"github.com/YuminosukeSato/panelforecast/schema"
)

var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pferrors.NewValueError("parseTime", "unrecognized time value "+raw)
}

// deriveCalendarCovariates appends calendar year and month columns
// (<time_col>_year, <time_col>_month) to the frame when the schema's time
// column is date-typed, and resolves the future-covariate name list.
//
// In training mode the derived names are appended to the schema's declared
// covariates; in prediction mode the list resolved at fit time is reused
// unchanged. The derivation itself runs identically in both modes: a
// mismatch between fit and predict would misalign the exogenous feature
// columns. The schema is passed explicitly because during Fit the incoming
// schema must not touch the forecaster until the fit commits.
func (f *Forecaster) deriveCalendarCovariates(frame *dataset.Frame, sch *schema.ForecastingSchema, training bool) ([]string, error) {
	var names []string
	if training {
		names = append([]string(nil), sch.FutureCovariates...)
	} else {
		names = append([]string(nil), f.FutureCovariates...)
	}

	if !sch.TimeColType.IsCalendar() {
		return names, nil
	}

	raw, err := frame.StringColumn(sch.TimeCol)
	if err != nil {
		return nil, err
	}
	years := make([]float64, len(raw))
	months := make([]float64, len(raw))
	for i, v := range raw {
		t, err := parseTime(v)
		if err != nil {
			return nil, err
		}
		years[i] = float64(t.Year())
		months[i] = float64(int(t.Month()))
	}

	yearCol := sch.TimeCol + "_year"
	monthCol := sch.TimeCol + "_month"
	if err := frame.AddFloatColumn(yearCol, years); err != nil {
		return nil, err
	}
	if err := frame.AddFloatColumn(monthCol, months); err != nil {
		return nil, err
	}
	if training {
		names = append(names, yearCol, monthCol)
	}
	return names, nil
}
