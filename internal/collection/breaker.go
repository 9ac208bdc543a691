// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package collection

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/dramatlas/dramatlas/internal/config"
	"github.com/dramatlas/dramatlas/internal/logging"
	"github.com/dramatlas/dramatlas/internal/metrics"
)

// CircuitBreakerClient wraps a bar service Fetcher with the circuit
// breaker pattern, preventing cascading failures when the bar service
// is unavailable or slow.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout calculations. The timing determines when to recover from
// failures, not data integrity; unit tests should exercise the wrapped
// client directly.
type CircuitBreakerClient struct {
	client Fetcher
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a bar service client with circuit
// breaker protection. Breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
//
// The config's breaker fields override the window and timeout when set.
func NewCircuitBreakerClient(cfg *config.BarConfig) *CircuitBreakerClient {
	return newCircuitBreakerClient(NewClient(cfg), cfg)
}

func newCircuitBreakerClient(client Fetcher, cfg *config.BarConfig) *CircuitBreakerClient {
	cbName := "bar-service"

	maxRequests := cfg.BreakerMaxRequests
	if maxRequests == 0 {
		maxRequests = 3
	}
	interval := cfg.BreakerInterval
	if interval <= 0 {
		interval = time.Minute
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     timeout,

		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false // Need at least 10 requests for statistical significance
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// FetchCollection retrieves a user's collection with circuit breaker
// protection. Every failure mode, including a rejected request while
// the circuit is open, is wrapped in ErrUnavailable.
func (cbc *CircuitBreakerClient) FetchCollection(ctx context.Context, username string) (*Collection, error) {
	start := time.Now()
	result, err := cbc.cb.Execute(func() (interface{}, error) {
		return cbc.client.FetchCollection(ctx, username)
	})
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordCollectionFetch("rejected", duration)
			logging.Warn().Err(err).Str("username", username).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.RecordCollectionFetch("failure", duration)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	metrics.RecordCollectionFetch("success", duration)

	return castResult[Collection](result)
}

// castResult safely type-casts the circuit breaker result.
func castResult[T any](result interface{}) (*T, error) {
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type %T", ErrUnavailable, result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
