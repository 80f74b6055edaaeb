package generator

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/Alias1177/SeriesLens/internal/anomaly"
	"github.com/Alias1177/SeriesLens/models"
)

const (
	baseValue = 100.0
	step      = time.Hour
)

// Random is the source of randomness consumed by the generator. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Generator synthesizes labeled series from a GenerationConfig
type Generator struct {
	rng      Random
	clock    func() time.Time
	detector *anomaly.Detector
}

// Option configures a Generator
type Option func(*Generator)

// WithClock sets the reference time the last timestamp is placed one step before
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithDetector sets the detector used to label generated series
func WithDetector(d *anomaly.Detector) Option {
	return func(g *Generator) {
		g.detector = d
	}
}

// New creates a generator. A nil rng is replaced with a randomly seeded PCG source.
func New(rng Random, opts ...Option) *Generator {
	if rng == nil {
		rng = NewRandom()
	}
	g := &Generator{
		rng:      rng,
		clock:    time.Now,
		detector: anomaly.DefaultDetector(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewSeeded creates a generator whose output is fully determined by seed and clock
func NewSeeded(seed uint64, opts ...Option) *Generator {
	return New(NewSeededRandom(seed), opts...)
}

// Generate synthesizes a raw series and labels it with the configured detector
func (g *Generator) Generate(cfg models.GenerationConfig) models.Series {
	return g.detector.Label(g.GenerateRaw(cfg))
}

// GenerateRaw synthesizes hourly points ending one hour before the clock. Values are built as
// base + pattern + trend, perturbed by multiplicative noise, floored at zero and finally
// distorted at floor(n*rate) distinct indices.
func (g *Generator) GenerateRaw(cfg models.GenerationConfig) []models.RawPoint {
	cfg = cfg.Normalize()
	n := cfg.PointCount
	if n == 0 {
		return []models.RawPoint{}
	}

	now := g.clock().UTC()
	points := make([]models.RawPoint, n)
	for i := range points {
		value := baseValue + g.patternComponent(cfg.Pattern, i) + g.trendComponent(cfg.Trend, i)
		value += (g.rng.Float64() - 0.5) * value * cfg.NoiseLevel

		points[i] = models.RawPoint{
			Timestamp: now.Add(-time.Duration(n-i) * step).Format(models.ISOMillis),
			Value:     math.Max(0, value),
		}
	}

	for _, idx := range g.pickIndices(n, int(math.Floor(float64(n)*cfg.AnomalyRate))) {
		points[idx].Value *= g.anomalyMultiplier()
	}

	return points
}

func (g *Generator) patternComponent(p models.Pattern, i int) float64 {
	x := float64(i)
	switch p {
	case models.PatternLinear:
		return x * 0.5
	case models.PatternSinusoidal:
		return math.Sin(x*0.2) * 20
	case models.PatternSeasonal:
		return math.Sin(x*0.1)*30 + math.Sin(x*0.02)*50
	case models.PatternCyclical:
		return math.Sin(x*0.3)*15 + math.Cos(x*0.1)*25
	case models.PatternVolatile:
		return (g.rng.Float64() - 0.5) * 80
	case models.PatternSmooth:
		return math.Sin(x*0.05) * 10
	case models.PatternMixed:
		return math.Sin(x*0.1)*20 + math.Sin(x*0.3)*10 + (g.rng.Float64()-0.5)*15
	default:
		return 0
	}
}

func (g *Generator) trendComponent(t models.Trend, i int) float64 {
	x := float64(i)
	switch t {
	case models.TrendGrowing:
		return x * 0.3
	case models.TrendDeclining:
		return -x * 0.2
	case models.TrendVolatile:
		return (g.rng.Float64() - 0.5) * x * 0.1
	default:
		return 0
	}
}

// pickIndices draws count distinct indices below n in draw order
func (g *Generator) pickIndices(n, count int) []int {
	count = min(count, n)
	seen := make(map[int]struct{}, count)
	picked := make([]int, 0, count)
	for len(picked) < count {
		idx := g.rng.IntN(n)
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		picked = append(picked, idx)
	}
	return picked
}

// anomalyMultiplier is a spike in [2,3) or a dip in [0.3,0.7) with equal odds
func (g *Generator) anomalyMultiplier() float64 {
	if g.rng.Float64() > 0.5 {
		return 2 + g.rng.Float64()
	}
	return 0.3 + g.rng.Float64()*0.4
}

// NewRandom returns a randomly seeded PCG source
func NewRandom() Random {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRandom returns the PCG source NewSeeded uses
func NewSeededRandom(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed))
}
