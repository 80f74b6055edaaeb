package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Alias1177/SeriesLens/internal/analyze"
	"github.com/Alias1177/SeriesLens/internal/calculate"
	"github.com/Alias1177/SeriesLens/internal/patterns"
	"github.com/Alias1177/SeriesLens/models"
)

// Format selects how a report is rendered
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Report is the serializable form of an analysis result
type Report struct {
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
	Summary     *models.Summary        `json:"summary" yaml:"summary"`
	Statistics  *calculate.Snapshot    `json:"statistics" yaml:"statistics"`
	Profile     patterns.SeriesProfile `json:"profile" yaml:"profile"`
	Insights    models.InsightReport   `json:"insights" yaml:"insights"`
	Histogram   []calculate.Bin        `json:"histogram" yaml:"histogram"`
	Anomalies   []WirePoint            `json:"anomalies" yaml:"anomalies"`
}

// NewReport collects the parts of a result worth publishing. Only anomalous points are kept.
func NewReport(result *analyze.Result, generatedAt time.Time) Report {
	return Report{
		GeneratedAt: generatedAt.UTC(),
		Summary:     result.Summary,
		Statistics:  result.Statistics,
		Profile:     result.Profile,
		Insights:    result.Insights,
		Histogram:   result.Histogram,
		Anomalies:   ToWire(result.Series.Anomalies()),
	}
}

// Render writes the report in the given format
func (r Report) Render(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return r.RenderJSON(w)
	case FormatYAML:
		return r.RenderYAML(w)
	default:
		return r.RenderText(w)
	}
}

// RenderJSON writes indented JSON
func (r Report) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// RenderYAML writes the report as a YAML document
func (r Report) RenderYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// RenderText writes a plain summary for terminals
func (r Report) RenderText(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("=== SERIES ANALYSIS ===\n")
	if r.Summary != nil {
		fmt.Fprintf(&sb, "Points: %d | Anomalies: %d (%.1f%%)\n", r.Summary.Total, r.Summary.AnomalyCount, r.Summary.AnomalyRate)
		fmt.Fprintf(&sb, "Min: %.2f | Max: %.2f | Avg: %.2f\n", r.Summary.Min, r.Summary.Max, r.Summary.Avg)
	}

	if s := r.Statistics; s != nil {
		sb.WriteString("\n--- Statistics ---\n")
		fmt.Fprintf(&sb, "Mean: %.2f | Median: %.2f | StdDev: %.2f | CV: %.3f\n", s.Mean, s.Median, s.StdDev, s.CV)
		fmt.Fprintf(&sb, "Q1: %.2f | Q3: %.2f | IQR: %.2f\n", s.Q1, s.Q3, s.IQR)
		fmt.Fprintf(&sb, "Skewness: %.3f | Kurtosis: %.3f\n", s.Skewness, s.Kurtosis)
		fmt.Fprintf(&sb, "Trend slope: %.4f | Volatility change: %.1f%%\n", s.TrendSlope, s.VolatilityChange)
	}

	fmt.Fprintf(&sb, "\n--- Profile ---\nDirection: %s | Variability: %s | Volatility: %s\n",
		r.Profile.Direction, r.Profile.Variability, r.Profile.VolatilityLevel)

	sb.WriteString("\n--- Insights ---\n")
	all := r.Insights.All()
	if len(all) == 0 {
		sb.WriteString("No insights\n")
	}
	for _, in := range all {
		if in.Level != "" {
			fmt.Fprintf(&sb, "[%s/%s] %s\n", in.Category, in.Level, in.Description)
		} else {
			fmt.Fprintf(&sb, "[%s] %s\n", in.Category, in.Description)
		}
	}

	if len(r.Histogram) > 0 {
		sb.WriteString("\n--- Distribution ---\n")
		for _, b := range r.Histogram {
			fmt.Fprintf(&sb, "%-24s %d\n", b.Label(), b.Count)
		}
	}

	if len(r.Anomalies) > 0 {
		sb.WriteString("\n--- Anomalies ---\n")
		for _, p := range r.Anomalies {
			fmt.Fprintf(&sb, "%s  %.2f  (deviation %.2f)\n", p.Timestamp, p.Value, p.Deviation)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
