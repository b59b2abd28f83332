package tipcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/tipper/pkg/logger"
)

const progressInterval = time.Second

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// getJSON fetches url and decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", url, err)
	}
	return nil
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitCases posts every case to /tip using a worker pool and records the
// outcome on each case.
func submitCases(ctx context.Context, cfg *Config, cases []Case, stats *Stats) error {
	log := logger.Get()
	log.Info(ctx, "submitting cases", logger.Int("cases", len(cases)), logger.Int("workers", cfg.Workers))

	client := newHTTPClient(cfg.Timeout)
	url := cfg.BaseURL + "/tip"

	var (
		submitted  int64
		matched    int64
		rejected   int64
		mismatched int64
		failed     int64
		lastReport atomic.Int64
	)
	lastReport.Store(time.Now().UnixNano())

	indexChan := make(chan int, cfg.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexChan {
				if ctx.Err() != nil {
					return
				}
				submitSingleCase(ctx, client, url, cfg.Tolerance, &cases[i])

				total := atomic.AddInt64(&submitted, 1)
				switch cases[i].Outcome {
				case OutcomeMatched:
					atomic.AddInt64(&matched, 1)
				case OutcomeRejected:
					atomic.AddInt64(&rejected, 1)
				case OutcomeMismatched:
					atomic.AddInt64(&mismatched, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}

				if !cfg.Verbose {
					continue
				}
				now := time.Now().UnixNano()
				last := lastReport.Load()
				if now-last >= int64(progressInterval) && lastReport.CompareAndSwap(last, now) {
					log.Info(ctx, "progress",
						logger.Int64("submitted", total),
						logger.Int("total", len(cases)),
						logger.Int64("mismatched", atomic.LoadInt64(&mismatched)),
						logger.Int64("failed", atomic.LoadInt64(&failed)))
				}
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range cases {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Matched = int(atomic.LoadInt64(&matched))
	stats.Rejected = int(atomic.LoadInt64(&rejected))
	stats.Mismatched = int(atomic.LoadInt64(&mismatched))
	stats.Failed = int(atomic.LoadInt64(&failed))
	for i := range cases {
		if cases[i].Outcome != OutcomeMatched {
			continue
		}
		if d := math.Abs(cases[i].Got - cases[i].Expected); d > stats.MaxDeviation {
			stats.MaxDeviation = d
		}
	}

	log.Info(ctx, "case submission completed",
		logger.Int("matched", stats.Matched),
		logger.Int("rejected", stats.Rejected),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed))

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled during submission: %w", err)
	}
	return nil
}

// submitSingleCase posts c and classifies the answer.
func submitSingleCase(ctx context.Context, client *HTTPClient, url string, tolerance float64, c *Case) {
	resp, err := client.Post(ctx, url, tipRequest{ServiceQuality: c.ServiceQuality, FoodQuality: c.FoodQuality})
	if err != nil {
		c.Outcome = OutcomeFailed
		return
	}
	body, err := readResponseBody(resp)
	c.Status = resp.StatusCode
	if err != nil {
		c.Outcome = OutcomeFailed
		return
	}

	switch {
	case resp.StatusCode == http.StatusOK && c.Valid:
		var res tipResponse
		if err := json.Unmarshal(body, &res); err != nil {
			c.Outcome = OutcomeFailed
			return
		}
		c.Got = res.Tip
		if math.Abs(res.Tip-c.Expected) <= tolerance {
			c.Outcome = OutcomeMatched
		} else {
			c.Outcome = OutcomeMismatched
		}
	case resp.StatusCode == http.StatusBadRequest && !c.Valid:
		c.Outcome = OutcomeRejected
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusBadRequest:
		c.Outcome = OutcomeMismatched
	default:
		c.Outcome = OutcomeFailed
	}
}
