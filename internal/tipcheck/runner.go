package tipcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/tipper/internal/domain/fuzzy"
	"github.com/okian/tipper/pkg/logger"
)

// Run executes a complete check against cfg.BaseURL and returns its
// statistics. Failed requests are counted but only mismatches, rule
// differences and counter drift fail the run.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting tip check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("cases", cfg.NumCases),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
		logger.Float64("tolerance", cfg.Tolerance),
		logger.Bool("verbose", cfg.Verbose))

	client := newHTTPClient(cfg.Timeout)

	if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}

	var before serverStats
	if err := client.getJSON(ctx, cfg.BaseURL+"/stats", &before); err != nil {
		return stats, fmt.Errorf("fetch stats: %w", err)
	}
	method, err := fuzzy.ParseMethod(before.Method)
	if err != nil {
		return stats, fmt.Errorf("service method: %w", err)
	}
	stats.Method = method.String()

	if err := verifyRules(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}

	cases, err := generateCases(ctx, cfg, fuzzy.Pipeline{Method: method}, stats)
	if err != nil {
		return stats, fmt.Errorf("case generation failed: %w", err)
	}

	if err := submitCases(ctx, cfg, cases, stats); err != nil {
		return stats, fmt.Errorf("case submission failed: %w", err)
	}

	var after serverStats
	if err := client.getJSON(ctx, cfg.BaseURL+"/stats", &after); err != nil {
		return stats, fmt.Errorf("fetch stats: %w", err)
	}

	if cfg.OutputFile != "" {
		if err := saveCasesToFile(ctx, cfg.OutputFile, cases); err != nil {
			log.Warn(ctx, "failed to save cases to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if err := verifyResults(ctx, before, after, stats); err != nil {
		return stats, err
	}

	log.Info(ctx, "check completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	// The service answers with Prometheus metrics; any 200 is healthy.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveCasesToFile writes every case and its outcome as a JSON array.
func saveCasesToFile(ctx context.Context, filename string, cases []Case) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cases: %w", err)
	}
	if err := os.WriteFile(filename, data, reportFilePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "cases saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var matchRate, casesPerSecond float64

	if answered := stats.Submitted - stats.Failed; answered > 0 {
		matchRate = float64(stats.Matched+stats.Rejected) / float64(answered) * percentageMultiplier
	}
	if stats.Duration > 0 {
		casesPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.String("method", stats.Method),
		logger.Int("casesGenerated", stats.CasesGenerated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("matched", stats.Matched),
		logger.Int("rejected", stats.Rejected),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.Float64("maxDeviation", stats.MaxDeviation),
		logger.Duration("duration", stats.Duration),
		logger.Float64("matchRate", matchRate),
		logger.Float64("casesPerSecond", casesPerSecond))
}
