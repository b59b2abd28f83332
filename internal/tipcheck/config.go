package tipcheck

import (
	"fmt"
	"time"
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumCases   int           // Number of cases to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Tolerance  float64       // Allowed deviation between served and local tip
	OutputFile string        // Optional JSON report of every case
	Verbose    bool          // Enable progress logging
}

// Validate reports the first unusable field.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url is empty", ErrInvalidConfig)
	case c.NumCases <= 0:
		return fmt.Errorf("%w: cases must be positive, got %d", ErrInvalidConfig, c.NumCases)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	case c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance must not be negative, got %v", ErrInvalidConfig, c.Tolerance)
	}
	return nil
}

// Outcome classifies how the service answered a case.
type Outcome string

// Case outcomes.
const (
	OutcomeMatched    Outcome = "matched"    // 200 with the locally computed tip
	OutcomeRejected   Outcome = "rejected"   // 400 for an out-of-range case
	OutcomeMismatched Outcome = "mismatched" // wrong tip or wrong status class
	OutcomeFailed     Outcome = "failed"     // transport or server error
)

// Case is one generated request and what the service made of it.
type Case struct {
	ID             string  `json:"id"`
	ServiceQuality float64 `json:"service_quality"`
	FoodQuality    float64 `json:"food_quality"`
	Valid          bool    `json:"valid"`
	Expected       float64 `json:"expected_tip"`
	Got            float64 `json:"got_tip"`
	Status         int     `json:"status"`
	Outcome        Outcome `json:"outcome"`
}

// Stats holds run statistics.
type Stats struct {
	Method         string
	CasesGenerated int
	Submitted      int
	Matched        int
	Rejected       int
	Mismatched     int
	Failed         int
	MaxDeviation   float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

type tipRequest struct {
	ServiceQuality float64 `json:"service_quality"`
	FoodQuality    float64 `json:"food_quality"`
}

type tipResponse struct {
	ID     string  `json:"id"`
	Tip    float64 `json:"tip"`
	Method string  `json:"method"`
}

type serverStats struct {
	Method       string `json:"method"`
	Calculations int64  `json:"calculations"`
	Rejected     int64  `json:"rejected"`
}
