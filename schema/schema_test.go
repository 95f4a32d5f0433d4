package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchema() *ForecastingSchema {
	return &ForecastingSchema{
		IDCol:            "series_id",
		TimeCol:          "date",
		TimeColType:      Date,
		Target:           "sales",
		FutureCovariates: []string{"promo"},
		ForecastLength:   12,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ForecastingSchema)
		wantErr bool
	}{
		{"valid", func(s *ForecastingSchema) {}, false},
		{"no covariates is valid", func(s *ForecastingSchema) { s.FutureCovariates = nil }, false},
		{"missing id col", func(s *ForecastingSchema) { s.IDCol = "" }, true},
		{"missing time col", func(s *ForecastingSchema) { s.TimeCol = "" }, true},
		{"missing target", func(s *ForecastingSchema) { s.Target = "" }, true},
		{"empty time type", func(s *ForecastingSchema) { s.TimeColType = "" }, true},
		{"unknown time type", func(s *ForecastingSchema) { s.TimeColType = "EPOCH" }, true},
		{"zero horizon", func(s *ForecastingSchema) { s.ForecastLength = 0 }, true},
		{"negative horizon", func(s *ForecastingSchema) { s.ForecastLength = -1 }, true},
		{"empty covariate name", func(s *ForecastingSchema) { s.FutureCovariates = []string{""} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSchema()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsCalendar(t *testing.T) {
	assert.True(t, Date.IsCalendar())
	assert.True(t, Datetime.IsCalendar())
	assert.False(t, Int.IsCalendar())
	assert.False(t, Other.IsCalendar())
}

func TestLoad(t *testing.T) {
	content := `{
		"id_col": "series_id",
		"time_col": "date",
		"time_col_dtype": "DATETIME",
		"target": "sales",
		"future_covariates": ["promo", "price"],
		"forecast_length": 8
	}`
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "series_id", s.IDCol)
	assert.Equal(t, Datetime, s.TimeColType)
	assert.Equal(t, []string{"promo", "price"}, s.FutureCovariates)
	assert.Equal(t, 8, s.ForecastLength)
}

func TestLoadRejectsInvalidSchema(t *testing.T) {
	content := `{"id_col": "series_id", "time_col": "date", "time_col_dtype": "DATE", "target": "sales", "forecast_length": 0}`
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
