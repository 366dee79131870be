// Package onerm estimates one-rep maxes and converts between a 1RM and
// working weights expressed as a percentage of it.
package onerm

import "math"

// MaxEstimatedReps is the highest rep count the multi-rep formulas are trusted for.
// Above it Estimate returns the lifted weight unchanged.
const MaxEstimatedReps = 15

// poundsPerKilogram is the exact avoirdupois conversion factor.
const poundsPerKilogram = 2.20462262185

// percentOfMax maps a rep count (index+1) to the share of 1RM that can be
// lifted for that many reps.
var percentOfMax = [...]float64{100, 95, 93, 90, 87, 85, 83, 80, 77, 75, 72, 70}

// Estimate returns the estimated one-rep max for a set of reps at weight.
// A single rep is the 1RM itself; counts above MaxEstimatedReps are returned
// unchanged. Invalid attempts (weight <= 0 or reps < 1) score 0.
func Estimate(weight float64, reps int) float64 {
	if weight <= 0 || reps < 1 {
		return 0
	}
	if reps == 1 || reps > MaxEstimatedReps {
		return weight
	}

	epley := math.Round(Epley(weight, reps))
	brzycki := math.Round(Brzycki(weight, reps))
	lombardi := math.Round(Lombardi(weight, reps))
	return math.Round((epley + brzycki + lombardi) / 3)
}

// Epley returns weight × (1 + reps/30).
func Epley(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// Brzycki returns weight × 36/(37 − reps). The denominator is not positive
// from 37 reps on, so the weight is returned as is there.
func Brzycki(weight float64, reps int) float64 {
	if reps >= 37 {
		return weight
	}
	return weight * (36 / float64(37-reps))
}

// Lombardi returns weight × reps^0.1.
func Lombardi(weight float64, reps int) float64 {
	return weight * math.Pow(float64(reps), 0.1)
}

// PercentageFor returns the percentage of 1RM typically lifted for reps.
// Anything above 12 reps uses the 12-rep value (70%).
func PercentageFor(reps int) float64 {
	if reps < 1 {
		return percentOfMax[0]
	}
	if reps > len(percentOfMax) {
		return percentOfMax[len(percentOfMax)-1]
	}
	return percentOfMax[reps-1]
}

// WeightForPercentage returns round(oneRM × percentage / 100).
func WeightForPercentage(oneRM, percentage float64) float64 {
	return math.Round(oneRM * percentage / 100)
}

// RoundToIncrement rounds weight to the nearest multiple of increment.
// A non-positive increment leaves the weight untouched.
func RoundToIncrement(weight, increment float64) float64 {
	if increment <= 0 {
		return weight
	}
	return math.Round(weight/increment) * increment
}

// ToPounds converts kilograms to pounds.
func ToPounds(kg float64) float64 {
	return kg * poundsPerKilogram
}

// ToKilograms converts pounds to kilograms.
func ToKilograms(lbs float64) float64 {
	return lbs / poundsPerKilogram
}

// RepWeight is one row of a rep chart.
type RepWeight struct {
	Reps       int     `json:"reps"`
	Percentage float64 `json:"percentage"`
	Weight     float64 `json:"weight"`
}

// Table returns the working weight for 1 through 12 reps given a 1RM.
func Table(oneRM float64) []RepWeight {
	chart := make([]RepWeight, 0, len(percentOfMax))
	for i, pct := range percentOfMax {
		chart = append(chart, RepWeight{
			Reps:       i + 1,
			Percentage: pct,
			Weight:     WeightForPercentage(oneRM, pct),
		})
	}
	return chart
}
