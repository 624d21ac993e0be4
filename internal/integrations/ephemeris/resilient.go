package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/Dan9191/kundli-service/internal/metrics"
	"github.com/Dan9191/kundli-service/internal/models"
)

// ResilienceConfig holds the retry and circuit breaker settings
type ResilienceConfig struct {
	Name             string
	Retries          int           // extra attempts after the first
	Backoff          time.Duration // multiplied by the attempt number
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultResilienceConfig returns the settings used when none are configured
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		Name:             "ephemeris",
		Retries:          2,
		Backoff:          200 * time.Millisecond,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// ResilientProvider retries transient provider failures behind a circuit
// breaker. Domain answers (out of range, no event) pass straight through and
// do not count as breaker failures. Neither do calls abandoned because the
// caller cancelled its context.
type ResilientProvider struct {
	next    Provider
	cb      *gobreaker.CircuitBreaker
	cfg     ResilienceConfig
	log     *logrus.Logger
	metrics *metrics.Collector
}

// NewResilientProvider wraps next with retries and a circuit breaker
func NewResilientProvider(next Provider, cfg ResilienceConfig, log *logrus.Logger, m *metrics.Collector) *ResilientProvider {
	r := &ResilientProvider{next: next, cfg: cfg, log: log, metrics: m}
	r.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("Circuit breaker '%s' state changed from %v to %v", name, from, to)
			m.SetBreakerState(name, int(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || Domain(err) || errors.Is(err, context.Canceled)
		},
	})
	return r
}

func execute[T any](ctx context.Context, r *ResilientProvider, action string, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= r.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("%w: %s cancelled: %w", ErrUnavailable, action, ctx.Err())
			case <-time.After(r.cfg.Backoff * time.Duration(attempt)):
			}
		}
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("%w: %s cancelled: %w", ErrUnavailable, action, err)
		}

		start := time.Now()
		v, err := r.cb.Execute(func() (interface{}, error) {
			return fn()
		})
		outcome := "ok"
		switch {
		case err == nil:
		case Domain(err):
			outcome = "domain"
		case errors.Is(err, context.Canceled):
			outcome = "cancelled"
		default:
			outcome = "error"
		}
		r.metrics.ObserveProvider(action, outcome, time.Since(start))

		if err == nil {
			return v.(T), nil
		}
		if Domain(err) {
			return zero, err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %s rejected by circuit breaker: %w", ErrUnavailable, action, err)
		}
		if ctx.Err() != nil {
			return zero, err
		}
		lastErr = err
		r.log.WithFields(logrus.Fields{
			"action":  action,
			"attempt": attempt + 1,
		}).WithError(err).Warn("Ephemeris call failed")
	}
	return zero, fmt.Errorf("ephemeris %s failed after %d attempts: %w", action, r.cfg.Retries+1, lastErr)
}

// Position implements Provider
func (r *ResilientProvider) Position(ctx context.Context, instant time.Time, body string) (models.RawSample, error) {
	return execute(ctx, r, "Position", func() (models.RawSample, error) {
		return r.next.Position(ctx, instant, body)
	})
}

// Ayanamsa implements Provider
func (r *ResilientProvider) Ayanamsa(ctx context.Context, instant time.Time) (float64, error) {
	return execute(ctx, r, "Ayanamsa", func() (float64, error) {
		return r.next.Ayanamsa(ctx, instant)
	})
}

// Houses implements Provider
func (r *ResilientProvider) Houses(ctx context.Context, instant time.Time, loc models.Location, system models.HouseSystem) (models.HouseCusps, error) {
	return execute(ctx, r, "Houses", func() (models.HouseCusps, error) {
		return r.next.Houses(ctx, instant, loc, system)
	})
}

// RiseSet implements Provider
func (r *ResilientProvider) RiseSet(ctx context.Context, date time.Time, loc models.Location) (models.RiseSet, error) {
	return execute(ctx, r, "RiseSet", func() (models.RiseSet, error) {
		return r.next.RiseSet(ctx, date, loc)
	})
}
