// Package fuzzy implements the fixed Mamdani inference pipeline used to
// recommend a tip from service and food quality.
package fuzzy

import "math"

// Membership function parameters for service quality.
const (
	servicePoorMean       = 2.0
	servicePoorSigma      = 1.0
	serviceGoodMean       = 5.0
	serviceGoodSigma      = 1.5
	serviceExcellentMean  = 8.0
	serviceExcellentSigma = 1.0
)

// Breakpoints of the piecewise food membership functions.
const (
	rancidFlatEnd      = 3.0
	rancidZeroFrom     = 6.0
	deliciousZeroUntil = 4.0
	deliciousFlatFrom  = 7.0
)

// Gaussian returns the degree of x in a Gaussian set centred on mean.
func Gaussian(x, mean, sigma float64) float64 {
	d := x - mean
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// ServicePoor is the "poor service" membership function.
func ServicePoor(x float64) float64 {
	return Gaussian(x, servicePoorMean, servicePoorSigma)
}

// ServiceGood is the "good service" membership function.
func ServiceGood(x float64) float64 {
	return Gaussian(x, serviceGoodMean, serviceGoodSigma)
}

// ServiceExcellent is the "excellent service" membership function.
func ServiceExcellent(x float64) float64 {
	return Gaussian(x, serviceExcellentMean, serviceExcellentSigma)
}

// Rancid is fully true up to 3 (inclusive, and for any x <= 0), ramps down
// to 0 at 6 and stays 0 above it. NaN maps to 0.
func Rancid(x float64) float64 {
	switch {
	case x <= rancidFlatEnd:
		return 1
	case x <= rancidZeroFrom:
		return (rancidZeroFrom - x) / (rancidZeroFrom - rancidFlatEnd)
	default:
		return 0
	}
}

// Delicious is 0 up to 4 (inclusive), ramps up to 1 at 7 and stays 1 above it.
func Delicious(x float64) float64 {
	switch {
	case x <= deliciousZeroUntil:
		return 0
	case x <= deliciousFlatFrom:
		return (x - deliciousZeroUntil) / (deliciousFlatFrom - deliciousZeroUntil)
	case x > deliciousFlatFrom:
		return 1
	default:
		// NaN
		return 0
	}
}
