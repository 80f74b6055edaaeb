package generator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Alias1177/SeriesLens/models"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named generation configuration modelled on a real-world source
type Preset struct {
	Name        string                  `json:"name" yaml:"name"`
	Title       string                  `json:"title" yaml:"title"`
	Description string                  `json:"description" yaml:"description"`
	Config      models.GenerationConfig `json:"config" yaml:"config"`
}

var presets = []Preset{
	{
		Name:        "ecommerce",
		Title:       "E-commerce Sales",
		Description: "Daily sales data with seasonal patterns and growth trend",
		Config: models.GenerationConfig{
			PointCount: 180, Pattern: models.PatternSeasonal, NoiseLevel: 0.15, AnomalyRate: 0.05, Trend: models.TrendGrowing,
		},
	},
	{
		Name:        "server",
		Title:       "Server Metrics",
		Description: "CPU usage with daily cycles and occasional spikes",
		Config: models.GenerationConfig{
			PointCount: 300, Pattern: models.PatternCyclical, NoiseLevel: 0.08, AnomalyRate: 0.12, Trend: models.TrendStable,
		},
	},
	{
		Name:        "stock",
		Title:       "Stock Market",
		Description: "Stock price movements with high volatility",
		Config: models.GenerationConfig{
			PointCount: 250, Pattern: models.PatternVolatile, NoiseLevel: 0.25, AnomalyRate: 0.15, Trend: models.TrendVolatile,
		},
	},
	{
		Name:        "iot",
		Title:       "IoT Sensors",
		Description: "Temperature readings with minimal noise",
		Config: models.GenerationConfig{
			PointCount: 400, Pattern: models.PatternSmooth, NoiseLevel: 0.05, AnomalyRate: 0.03, Trend: models.TrendDeclining,
		},
	},
}

// DefaultConfig is the configuration the generator starts from
func DefaultConfig() models.GenerationConfig {
	return models.GenerationConfig{
		PointCount:  200,
		Pattern:     models.PatternMixed,
		NoiseLevel:  0.1,
		AnomalyRate: 0.08,
		Trend:       models.TrendStable,
	}
}

// Presets returns a copy of the built-in presets
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by name, case-insensitively
func LookupPreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.Name == key {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// RandomConfig draws a configuration with 100..549 points, 5..35% noise and 2..17% anomalies
func RandomConfig(rng Random) models.GenerationConfig {
	return models.GenerationConfig{
		PointCount:  int(math.Floor(rng.Float64()*450)) + 100,
		Pattern:     models.Patterns[rng.IntN(len(models.Patterns))],
		NoiseLevel:  rng.Float64()*0.3 + 0.05,
		AnomalyRate: rng.Float64()*0.15 + 0.02,
		Trend:       models.Trends[rng.IntN(len(models.Trends))],
	}
}
