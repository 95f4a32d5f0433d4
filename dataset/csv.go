package dataset

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"github.com/YuminosukeSato/panelforecast/pkg/errors"
	"github.com/YuminosukeSato/panelforecast/schema"
)

// ReadCSV loads a long-format panel from a CSV file with a header row. The
// schema's id and time columns are read as strings; every other column is
// parsed as float64, with empty and NA cells read as NaN. The id and time
// columns must be present; the target may be absent (forward frames at
// prediction time carry no target).
func ReadCSV(path string, sch *schema.ForecastingSchema) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %q", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", path)
	}
	if len(records) == 0 {
		return nil, errors.NewValueError("ReadCSV", "file "+path+" is empty")
	}

	header := records[0]
	rows := records[1:]

	frame := New()
	for j, name := range header {
		if name == sch.IDCol || name == sch.TimeCol {
			values := make([]string, len(rows))
			for i, row := range rows {
				values[i] = row[j]
			}
			if err := frame.AddStringColumn(name, values); err != nil {
				return nil, err
			}
			continue
		}
		values := make([]float64, len(rows))
		for i, row := range rows {
			if row[j] == "" || row[j] == "NA" || row[j] == "NaN" {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "ReadCSV: column %q row %d", name, i+1)
			}
			values[i] = v
		}
		if err := frame.AddFloatColumn(name, values); err != nil {
			return nil, err
		}
	}

	if !frame.Has(sch.IDCol) {
		return nil, errors.NewMissingColumnError("ReadCSV", sch.IDCol)
	}
	if !frame.Has(sch.TimeCol) {
		return nil, errors.NewMissingColumnError("ReadCSV", sch.TimeCol)
	}
	return frame, nil
}

// WriteCSV writes the frame to a CSV file with a header row.
func (f *Frame) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(f.Columns()); err != nil {
		return errors.Wrap(err, "WriteCSV: header")
	}
	rows := f.NumRows()
	record := make([]string, f.NumCols())
	for i := 0; i < rows; i++ {
		for j, c := range f.cols {
			if c.typ == stringType {
				record[j] = c.strs[i]
			} else {
				record[j] = strconv.FormatFloat(c.floats[i], 'g', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "WriteCSV: row %d", i)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "WriteCSV: flush")
}
