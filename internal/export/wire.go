package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Alias1177/SeriesLens/models"
)

// WirePoint is the external encoding of a labeled point. Anomaly is -1 for anomalous and 1 for
// normal.
type WirePoint struct {
	Timestamp string  `json:"timestamp" yaml:"timestamp"`
	Value     float64 `json:"value" yaml:"value"`
	Anomaly   int     `json:"anomaly" yaml:"anomaly"`
	Deviation float64 `json:"deviation" yaml:"deviation"`
}

// ToWire encodes a labeled series
func ToWire(series models.Series) []WirePoint {
	out := make([]WirePoint, len(series))
	for i, p := range series {
		out[i] = WirePoint{
			Timestamp: p.Timestamp,
			Value:     p.Value,
			Anomaly:   p.Label.Sentinel(),
			Deviation: p.Deviation,
		}
	}
	return out
}

// FromWire decodes points previously produced by ToWire. Indices follow the input order.
func FromWire(points []WirePoint) models.Series {
	out := make(models.Series, len(points))
	for i, p := range points {
		out[i] = models.DataPoint{
			Index:     i,
			Timestamp: p.Timestamp,
			Value:     p.Value,
			Deviation: p.Deviation,
			Label:     models.LabelFromSentinel(p.Anomaly),
		}
		if t, ok := models.ParseTimestamp(p.Timestamp); ok {
			out[i].Time = t
		}
	}
	return out
}

// WriteCSV writes the table offered for download. A zero deviation is left blank.
func WriteCSV(w io.Writer, series models.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Timestamp", "Value", "Anomaly", "Deviation"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, p := range series {
		deviation := ""
		if p.Deviation != 0 {
			deviation = formatFloat(p.Deviation)
		}
		if err := cw.Write([]string{p.Timestamp, formatFloat(p.Value), p.Label.YesNo(), deviation}); err != nil {
			return fmt.Errorf("writing row %d: %w", p.Index, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRawCSV writes unlabeled points in the format ingestion reads back
func WriteRawCSV(w io.Writer, points []models.RawPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "value"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range points {
		if err := cw.Write([]string{p.Timestamp, formatFloat(p.Value)}); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
