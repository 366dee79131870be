// Package tier maps strength percentiles onto letter tiers (E- ... S++).
package tier

import (
	"math"
	"strings"
)

// Tier is a strength level label such as "B+".
type Tier string

// threshold is the lowest percentile that earns a tier.
type threshold struct {
	tier Tier
	min  int
}

// ladder lists every tier in ascending order. Together the thresholds
// partition [0, 100) with no gaps: each tier runs up to the next one's min.
var ladder = []threshold{
	{"E-", 0},
	{"E", 4},
	{"E+", 7},
	{"D-", 10}, // beginner standard
	{"D", 15},
	{"D+", 20},
	{"C-", 25}, // intermediate standard
	{"C", 32},
	{"C+", 40},
	{"B-", 50}, // advanced standard
	{"B", 57},
	{"B+", 65},
	{"A-", 75}, // elite standard
	{"A", 80},
	{"A+", 85},
	{"S-", 90}, // god standard
	{"S", 94},
	{"S+", 97},
	{"S++", 99},
}

var colors = map[byte]string{
	'E': "#9E9E9E",
	'D': "#8D6E63",
	'C': "#43A047",
	'B': "#1E88E5",
	'A': "#8E24AA",
	'S': "#FFB300",
}

// For returns the tier for a percentile. Values below zero get the lowest tier.
func For(percentile float64) Tier {
	for i := len(ladder) - 1; i >= 0; i-- {
		if float64(ladder[i].min) <= percentile {
			return ladder[i].tier
		}
	}
	return ladder[0].tier
}

// NextInfo describes progress towards the next tier.
type NextInfo struct {
	Current Tier  `json:"current"`
	Next    *Tier `json:"next"`
	// Needed is how many whole percentile points remain; 0 when Next is nil.
	Needed int `json:"needed"`
}

// Next returns the current tier and the closest tier above percentile.
// At or above the top threshold there is no next tier.
func Next(percentile float64) NextInfo {
	info := NextInfo{Current: For(percentile)}
	for _, th := range ladder {
		if float64(th.min) > percentile {
			next := th.tier
			info.Next = &next
			info.Needed = th.min - int(math.Floor(percentile))
			return info
		}
	}
	return info
}

// Color returns the display colour of a tier. Modifiers share their base
// letter's colour; unknown tiers are grey.
func Color(t Tier) string {
	if t == "" {
		return colors['E']
	}
	if c, ok := colors[strings.ToUpper(string(t))[0]]; ok {
		return c
	}
	return colors['E']
}

// Threshold returns the minimum percentile for t and whether t is a known tier.
func Threshold(t Tier) (int, bool) {
	for _, th := range ladder {
		if th.tier == t {
			return th.min, true
		}
	}
	return 0, false
}

// All returns every tier in ascending order.
func All() []Tier {
	tiers := make([]Tier, len(ladder))
	for i, th := range ladder {
		tiers[i] = th.tier
	}
	return tiers
}
