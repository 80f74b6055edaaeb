package assistant

import (
	"fmt"
	"strings"

	"github.com/Alias1177/SeriesLens/models"
)

const (
	NoAnomalyContext = "No anomaly detected recently."
	NoDataAnswer     = "No data has been analyzed."
)

// BuildContext turns the anomalies of a labeled series into the passage questions are answered from
func BuildContext(series models.Series) string {
	anomalies := series.Anomalies()
	if len(anomalies) == 0 {
		return NoAnomalyContext
	}

	parts := make([]string, 0, len(anomalies))
	for _, p := range anomalies {
		parts = append(parts, fmt.Sprintf("An anomaly was detected at %s with a value of %.2f.", p.Timestamp, p.Value))
	}
	return strings.Join(parts, " ")
}
