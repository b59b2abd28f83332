package tipcheck

import (
	"context"
	"fmt"
	"reflect"

	"github.com/okian/tipper/internal/domain/fuzzy"
	"github.com/okian/tipper/pkg/logger"
)

// verifyRules checks the served rule table matches the compiled-in one.
func verifyRules(ctx context.Context, client *HTTPClient, baseURL string) error {
	var served []fuzzy.Rule
	if err := client.getJSON(ctx, baseURL+"/rules", &served); err != nil {
		return fmt.Errorf("fetch rules: %w", err)
	}
	if want := fuzzy.Rules(); !reflect.DeepEqual(served, want) {
		return fmt.Errorf("%w: got %d rules, want %d", ErrRulesDiffer, len(served), len(want))
	}
	logger.Get().Info(ctx, "rule table verified", logger.Int("rules", len(served)))
	return nil
}

// verifyResults checks every case was answered correctly and that the
// service counters moved at least as far as this run pushed them. Other
// clients may add to the counters concurrently, so only a shortfall is an
// error.
func verifyResults(ctx context.Context, before, after serverStats, stats *Stats) error {
	if stats.Mismatched > 0 {
		return fmt.Errorf("%w: %d of %d cases", ErrMismatch, stats.Mismatched, stats.Submitted)
	}
	if d := after.Calculations - before.Calculations; d < int64(stats.Matched) {
		return fmt.Errorf("%w: calculations moved by %d, want at least %d", ErrStatsDrift, d, stats.Matched)
	}
	if d := after.Rejected - before.Rejected; d < int64(stats.Rejected) {
		return fmt.Errorf("%w: rejected moved by %d, want at least %d", ErrStatsDrift, d, stats.Rejected)
	}
	if after.Method != before.Method {
		return fmt.Errorf("%w: method changed from %s to %s", ErrStatsDrift, before.Method, after.Method)
	}
	logger.Get().Info(ctx, "results verified",
		logger.Int("matched", stats.Matched),
		logger.Int("rejected", stats.Rejected),
		logger.Float64("maxDeviation", stats.MaxDeviation))
	return nil
}
