package models

import (
	"time"
)

// Config holds all application configuration
type Config struct {
	LogLevel            string   `mapstructure:"log_level"`
	LogFile             string   `mapstructure:"log_file"` // empty disables the rotating file
	HTTPAddr            string   `mapstructure:"http_addr"`
	AllowedOrigins      []string `mapstructure:"allowed_origins"`
	AssistantURL        string   `mapstructure:"assistant_url"`
	RequestTimeout      int      `mapstructure:"request_timeout"` // seconds
	RequestsPerSec      int      `mapstructure:"requests_per_sec"`
	WindowSize          int      `mapstructure:"window_size"`
	ThresholdMultiplier float64  `mapstructure:"threshold_multiplier"`
	TelegramBotToken    string   `mapstructure:"telegram_bot_token"`
	TelegramChatIDs     []int64  `mapstructure:"-"`
}

// RawPoint is a single unlabeled observation as supplied by ingestion
type RawPoint struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// RawValues returns the values of raw points in order
func RawValues(points []RawPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}

// Label classifies a labeled observation
type Label int

const (
	LabelNormal Label = iota
	LabelAnomalous
)

func (l Label) String() string {
	if l == LabelAnomalous {
		return "anomalous"
	}
	return "normal"
}

// Sentinel returns the -1/1 encoding used on the wire
func (l Label) Sentinel() int {
	if l == LabelAnomalous {
		return -1
	}
	return 1
}

// YesNo returns the export encoding of the label
func (l Label) YesNo() string {
	if l == LabelAnomalous {
		return "Yes"
	}
	return "No"
}

// LabelFromSentinel decodes the wire encoding. Anything other than -1 is normal.
func LabelFromSentinel(v int) Label {
	if v == -1 {
		return LabelAnomalous
	}
	return LabelNormal
}

// DataPoint is a labeled observation. Only the detector creates these.
type DataPoint struct {
	Index     int       `json:"index"` // position in the labeled series, survives filtering
	Timestamp string    `json:"timestamp"`
	Time      time.Time `json:"-"` // zero when Timestamp does not parse
	Value     float64   `json:"value"`
	Deviation float64   `json:"deviation"` // |value - rolling mean| at labeling time
	Label     Label     `json:"label"`
}

// IsAnomaly reports whether the point was labeled anomalous
func (p DataPoint) IsAnomaly() bool {
	return p.Label == LabelAnomalous
}

// HasTime reports whether the timestamp could be parsed
func (p DataPoint) HasTime() bool {
	return !p.Time.IsZero()
}

// Series is an ordered sequence of labeled points
type Series []DataPoint

// Values returns the observation values in series order
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Anomalies returns the anomalous points in series order
func (s Series) Anomalies() Series {
	var out Series
	for _, p := range s {
		if p.IsAnomaly() {
			out = append(out, p)
		}
	}
	return out
}

// AnomalyCount counts anomalous points
func (s Series) AnomalyCount() int {
	count := 0
	for _, p := range s {
		if p.IsAnomaly() {
			count++
		}
	}
	return count
}

// Level is the confidence, severity or priority attached to an insight
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// InsightCategory groups insights the way they are presented
type InsightCategory string

const (
	CategoryPattern        InsightCategory = "pattern"
	CategoryAnomaly        InsightCategory = "anomaly"
	CategoryTrend          InsightCategory = "trend"
	CategoryRecommendation InsightCategory = "recommendation"
)

// Insight is a single finding produced by the pattern analyzer
type Insight struct {
	Category    InsightCategory `json:"category" yaml:"category"`
	Kind        string          `json:"kind" yaml:"kind"` // cyclical, volatility, direction, clustering, recent_shift, or a recommendation action
	Description string          `json:"description" yaml:"description"`
	Level       Level           `json:"level,omitempty" yaml:"level,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// InsightReport holds the insights of one analysis run, grouped by category
type InsightReport struct {
	Patterns        []Insight `json:"patterns" yaml:"patterns"`
	Anomalies       []Insight `json:"anomalies" yaml:"anomalies"`
	Trends          []Insight `json:"trends" yaml:"trends"`
	Recommendations []Insight `json:"recommendations" yaml:"recommendations"`
}

// Total counts insights across all categories
func (r InsightReport) Total() int {
	return len(r.Patterns) + len(r.Anomalies) + len(r.Trends) + len(r.Recommendations)
}

// All returns every insight, patterns first and recommendations last
func (r InsightReport) All() []Insight {
	all := make([]Insight, 0, r.Total())
	all = append(all, r.Patterns...)
	all = append(all, r.Anomalies...)
	all = append(all, r.Trends...)
	all = append(all, r.Recommendations...)
	return all
}

// Summary describes a filtered view of a labeled series
type Summary struct {
	Total        int     `json:"total" yaml:"total"`
	AnomalyCount int     `json:"anomalies" yaml:"anomalies"`
	AnomalyRate  float64 `json:"anomaly_rate" yaml:"anomaly_rate"` // percent
	Min          float64 `json:"min" yaml:"min"`
	Max          float64 `json:"max" yaml:"max"`
	Avg          float64 `json:"avg" yaml:"avg"`
}
