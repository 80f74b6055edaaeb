package notify

import (
	"fmt"
	"strings"

	"github.com/Alias1177/SeriesLens/internal/analyze"
	"github.com/Alias1177/SeriesLens/models"
)

const maxListedAnomalies = 10

// FormatReport renders an analysis result as a Markdown message
func FormatReport(result *analyze.Result) string {
	var sb strings.Builder

	sb.WriteString("📊 *Series Analysis Report*\n\n")

	if s := result.Summary; s != nil {
		fmt.Fprintf(&sb, "Points: %d\n", s.Total)
		fmt.Fprintf(&sb, "Anomalies: %d (%.1f%%)\n", s.AnomalyCount, s.AnomalyRate)
		fmt.Fprintf(&sb, "Range: %.2f - %.2f, avg %.2f\n", s.Min, s.Max, s.Avg)
	}
	if st := result.Statistics; st != nil {
		fmt.Fprintf(&sb, "Trend: %s (slope %.4f)\n", strings.ToLower(result.Profile.Direction), st.TrendSlope)
	}

	if insights := result.Insights.All(); len(insights) > 0 {
		sb.WriteString("\n*Insights*\n")
		for _, in := range insights {
			fmt.Fprintf(&sb, "%s %s\n", icon(in), in.Description)
		}
	}

	anomalies := result.Series.Anomalies()
	if len(anomalies) > 0 {
		sb.WriteString("\n*Anomalies*\n")
		for i, p := range anomalies {
			if i == maxListedAnomalies {
				fmt.Fprintf(&sb, "... and %d more\n", len(anomalies)-maxListedAnomalies)
				break
			}
			fmt.Fprintf(&sb, "• %s: %.2f\n", p.Timestamp, p.Value)
		}
	}

	return sb.String()
}

func icon(in models.Insight) string {
	switch in.Category {
	case models.CategoryPattern:
		return "🔄"
	case models.CategoryAnomaly:
		return "⚠️"
	case models.CategoryTrend:
		return "📈"
	default:
		return "💡"
	}
}
