// Package percentile ranks a lift against the strength standards as a
// population percentile in [0, 99].
package percentile

import (
	"math"

	"github.com/claude/liftrank/internal/strength/standards"
)

const (
	// Max is the highest percentile ever reported.
	Max = 99.0
	// Unranked is returned for exercises without a standard.
	Unranked = 50.0
)

// band is one linear segment of the ratio -> percentile curve.
type band struct {
	from, to float64 // percentile range covered
}

var (
	beginnerBand     = band{0, 10}
	intermediateBand = band{10, 25}
	advancedBand     = band{25, 50}
	eliteBand        = band{50, 75}
	godBand          = band{75, 90}
	beyondBand       = band{90, Max}
)

// Engine computes percentiles from a standards source. The resolver maps
// catalog exercise IDs onto the IDs the standards are filed under.
type Engine struct {
	source   standards.Source
	resolver standards.Resolver
}

// New creates an Engine.
func New(source standards.Source, resolver standards.Resolver) *Engine {
	return &Engine{source: source, resolver: resolver}
}

// NewDefault creates an Engine over the built-in tables and aliases.
func NewDefault() *Engine {
	return New(standards.Default(), standards.DefaultAliases())
}

// Calculate returns the percentile of liftWeight at bodyWeight (same unit).
// Invalid weights rank 0; exercises without a standard rank Unranked.
// A non-nil age normalizes the ratio by the age factor.
func (e *Engine) Calculate(liftWeight, bodyWeight float64, gender standards.Gender, exercise string, age *int) float64 {
	if bodyWeight <= 0 || liftWeight <= 0 {
		return 0
	}

	std, ok := e.lookup(exercise, gender)
	if !ok {
		return Unranked
	}

	ratio := liftWeight / bodyWeight
	if age != nil {
		ratio /= standards.AgeFactor(*age)
	}
	return FromRatio(ratio, std)
}

// Has reports whether a standard exists for exercise and gender.
func (e *Engine) Has(exercise string, gender standards.Gender) bool {
	_, ok := e.lookup(exercise, gender)
	return ok
}

func (e *Engine) lookup(exercise string, gender standards.Gender) (standards.Standard, bool) {
	id := exercise
	if e.resolver != nil {
		id = e.resolver.Resolve(exercise)
	}
	return e.source.Lookup(id, gender)
}

// FromRatio interpolates a body-weight ratio across the five bands of std.
// Above the god threshold the top decile spans god×0.2 and is capped at Max.
func FromRatio(ratio float64, std standards.Standard) float64 {
	var p float64
	switch {
	case ratio <= std.Beginner:
		p = beginnerBand.at(ratio, 0, std.Beginner)
	case ratio <= std.Intermediate:
		p = intermediateBand.at(ratio, std.Beginner, std.Intermediate)
	case ratio <= std.Advanced:
		p = advancedBand.at(ratio, std.Intermediate, std.Advanced)
	case ratio <= std.Elite:
		p = eliteBand.at(ratio, std.Advanced, std.Elite)
	case ratio <= std.God:
		p = godBand.at(ratio, std.Elite, std.God)
	default:
		p = beyondBand.from + (ratio-std.God)/(std.God*0.2)*(beyondBand.to-beyondBand.from)
	}
	return clamp(p)
}

// at maps ratio within [lo, hi] linearly onto the band.
func (b band) at(ratio, lo, hi float64) float64 {
	if hi <= lo {
		return b.to
	}
	return b.from + (ratio-lo)/(hi-lo)*(b.to-b.from)
}

func clamp(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return math.Min(p, Max)
}
