package tipcheck

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	service "github.com/okian/tipper/internal/app"
	"github.com/okian/tipper/internal/domain/fuzzy"
	"github.com/okian/tipper/pkg/logger"
)

const randomFloatDivisor = 1000000

// Case profiles, drawn uniformly.
const (
	caseUniform = iota
	casePoorService
	caseExcellentService
	caseRancidFood
	caseDeliciousFood
	caseBoundaryPair
	caseBoundaryService
	caseOutOfRange
	profileCount
)

// Scores where a membership function changes shape.
var boundaries = []float64{0, 2, 3, 4, 5, 6, 7, 8, 10}

// Scores the service must reject.
var outOfRange = []float64{-1, -0.001, 10.001, 11, 100}

// getRandomFloat returns a random float64 in [0, 1) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func between(lo, hi float64) float64 {
	return lo + getRandomFloat()*(hi-lo)
}

func pick(values []float64) float64 {
	return values[randomInt(len(values))]
}

// generateCases draws cfg.NumCases cases and computes the tip each valid one
// should get from p.
func generateCases(ctx context.Context, cfg *Config, p fuzzy.Pipeline, stats *Stats) ([]Case, error) {
	logger.Get().Info(ctx, "generating cases", logger.Int("numCases", cfg.NumCases))

	cases := make([]Case, cfg.NumCases)
	for i := range cases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during case generation: %w", err)
		}
		sq, fq := generateInputs(randomInt(profileCount))
		cases[i] = newCase(p, sq, fq)
	}

	stats.CasesGenerated = len(cases)
	logger.Get().Info(ctx, "generated cases successfully", logger.Int("count", len(cases)))
	return cases, nil
}

// generateInputs returns a (service, food) pair for the given profile.
func generateInputs(profile int) (float64, float64) {
	switch profile {
	case casePoorService:
		return between(0, 3.5), between(0, 10)
	case caseExcellentService:
		return between(6.5, 10), between(0, 10)
	case caseRancidFood:
		return between(0, 10), between(0, 4)
	case caseDeliciousFood:
		return between(0, 10), between(6, 10)
	case caseBoundaryPair:
		return pick(boundaries), pick(boundaries)
	case caseBoundaryService:
		return pick(boundaries), between(0, 10)
	case caseOutOfRange:
		if randomInt(2) == 0 {
			return pick(outOfRange), between(0, 10)
		}
		return between(0, 10), pick(outOfRange)
	default:
		return between(0, 10), between(0, 10)
	}
}

func newCase(p fuzzy.Pipeline, sq, fq float64) Case {
	c := Case{
		ID:             uuid.NewString(),
		ServiceQuality: sq,
		FoodQuality:    fq,
	}
	if service.Validate(service.Request{ServiceQuality: sq, FoodQuality: fq}) == nil {
		c.Valid = true
		c.Expected = p.Calculate(sq, fq)
	}
	return c
}
