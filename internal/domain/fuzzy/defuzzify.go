package fuzzy

import (
	"fmt"
	"strings"
)

// Method selects the defuzzification formula.
type Method int

const (
	// MethodCentroid is the standard center of gravity over the three tip
	// regions, each represented by its midpoint.
	MethodCentroid Method = iota
	// MethodLegacy reproduces the discretized 30-slot sum of the first
	// implementation, including its skipped boundary slots and fixed
	// per-region weight of 10.
	MethodLegacy
)

// Tip axis layout. Regions are [0,10), [10,20) and [20,30].
const (
	regionWidth      = 10
	axisSlots        = 3 * regionWidth
	cheapMidpoint    = 5.0
	averageMidpoint  = 15.0
	generousMidpoint = 25.0
)

// String returns the configuration name of m.
func (m Method) String() string {
	switch m {
	case MethodCentroid:
		return "centroid"
	case MethodLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps a configuration name onto a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "centroid":
		return MethodCentroid, nil
	case "legacy":
		return MethodLegacy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Defuzzify turns aggregated activations into a crisp tip using m. When every
// activation is zero the result is 0.
func Defuzzify(t TipDegrees, m Method) float64 {
	if m == MethodLegacy {
		return legacyCentroid(t)
	}
	return centroid(t)
}

func centroid(t TipDegrees) float64 {
	total := t.Total()
	if total <= 0 {
		return 0
	}
	num := t.Cheap*cheapMidpoint + t.Average*averageMidpoint + t.Generous*generousMidpoint
	return num / total
}

func legacyCentroid(t TipDegrees) float64 {
	var num float64
	for i := 0; i < axisSlots; i++ {
		x := float64(i)
		switch {
		case i < regionWidth:
			num += t.Cheap * x
		case i > regionWidth && i < 2*regionWidth:
			num += t.Average * x
		case i > 2*regionWidth:
			num += t.Generous * x
		}
	}
	den := regionWidth * t.Total()
	if den <= 0 {
		return 0
	}
	return num / den
}
