// Package service provides the tip calculation service consumed by the HTTP
// API and the CLI. It owns input validation; the fuzzy pipeline behind it
// assumes valid input.
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/tipper/internal/domain/fuzzy"
	"github.com/okian/tipper/pkg/logger"
	"github.com/okian/tipper/pkg/metrics"
)

// Accepted range for both quality scores.
const (
	MinQuality = 0.0
	MaxQuality = 10.0
)

// Input field names, shared with validation errors and metrics labels.
const (
	FieldService = "service_quality"
	FieldFood    = "food_quality"
)

// Request carries the two crisp inputs.
type Request struct {
	ServiceQuality float64 `json:"service_quality"`
	FoodQuality    float64 `json:"food_quality"`
}

// Result is a calculated tip plus every intermediate degree map.
type Result struct {
	ID             string               `json:"id"`
	ServiceQuality float64              `json:"service_quality"`
	FoodQuality    float64              `json:"food_quality"`
	Tip            float64              `json:"tip"`
	Method         string               `json:"method"`
	Service        fuzzy.ServiceDegrees `json:"service"`
	Food           fuzzy.FoodDegrees    `json:"food"`
	Levels         fuzzy.TipDegrees     `json:"levels"`
}

// Service validates requests and runs them through the fuzzy pipeline.
// It is safe for concurrent use.
type Service struct {
	pipeline fuzzy.Pipeline
	logger   logger.Logger
	newID    func() string

	calculations atomic.Int64
	rejected     atomic.Int64

	mu      sync.RWMutex
	lastTip float64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMethod selects the defuzzification formula.
func WithMethod(m fuzzy.Method) Option {
	return func(s *Service) {
		s.pipeline.Method = m
	}
}

// WithIDGenerator replaces the uuid generator used for result IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New constructs a Service. Without WithLogger it logs nowhere.
func New(opts ...Option) *Service {
	s := &Service{
		pipeline: fuzzy.Pipeline{Method: fuzzy.MethodCentroid},
		logger:   logger.Nop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Method reports the defuzzification method in use.
func (s *Service) Method() fuzzy.Method {
	return s.pipeline.Method
}

// Calculate validates req and returns the recommended tip.
func (s *Service) Calculate(ctx context.Context, req Request) (Result, error) {
	if err := Validate(req); err != nil {
		s.rejected.Add(1)
		s.logger.Debug(ctx, "rejected tip request",
			logger.Float64(FieldService, req.ServiceQuality),
			logger.Float64(FieldFood, req.FoodQuality),
			logger.Error(err),
		)
		return Result{}, err
	}

	start := time.Now()
	ev := s.pipeline.Evaluate(req.ServiceQuality, req.FoodQuality)
	elapsedMs := float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)

	method := s.pipeline.Method.String()
	metrics.RecordCalculation(method, ev.Tip, elapsedMs)
	metrics.RecordTipLevels(ev.Aggregated.Cheap, ev.Aggregated.Average, ev.Aggregated.Generous)
	s.calculations.Add(1)
	s.mu.Lock()
	s.lastTip = ev.Tip
	s.mu.Unlock()

	res := Result{
		ID:             s.newID(),
		ServiceQuality: req.ServiceQuality,
		FoodQuality:    req.FoodQuality,
		Tip:            ev.Tip,
		Method:         method,
		Service:        ev.Service,
		Food:           ev.Food,
		Levels:         ev.Aggregated,
	}
	s.logger.Debug(ctx, "tip calculated",
		logger.String("id", res.ID),
		logger.Float64(FieldService, req.ServiceQuality),
		logger.Float64(FieldFood, req.FoodQuality),
		logger.Any("levels", ev.Aggregated),
		logger.Float64("tip", ev.Tip),
		logger.String("method", method),
	)
	return res, nil
}

// Rules returns the fixed rule table.
func (s *Service) Rules() []fuzzy.Rule {
	return fuzzy.Rules()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	last := s.lastTip
	s.mu.RUnlock()
	return map[string]interface{}{
		"method":       s.pipeline.Method.String(),
		"calculations": s.calculations.Load(),
		"rejected":     s.rejected.Load(),
		"lastTip":      last,
	}
}

// Validate checks both inputs are finite and within [MinQuality, MaxQuality].
// Failures wrap ErrOutOfRange and name the offending field.
func Validate(req Request) error {
	if err := validateField(FieldService, req.ServiceQuality); err != nil {
		return err
	}
	return validateField(FieldFood, req.FoodQuality)
}

func validateField(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < MinQuality || v > MaxQuality {
		metrics.RecordRejectedInput(name)
		return fmt.Errorf("%s=%v: %w", name, v, ErrOutOfRange)
	}
	return nil
}
