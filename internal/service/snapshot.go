package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dan9191/kundli-service/internal/integrations/ephemeris"
	"github.com/Dan9191/kundli-service/internal/jyotish"
	"github.com/Dan9191/kundli-service/internal/models"
)

// observation is everything sampled from the provider for one birth
type observation struct {
	natal   models.Snapshot
	sunrise *models.Snapshot
	riseSet *models.RiseSet
}

// sampleSet collects concurrent provider answers for one instant
type sampleSet struct {
	mu      sync.Mutex
	samples map[models.Body]models.RawSample
}

func (s *sampleSet) put(b models.Body, raw models.RawSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw.Body = b
	s.samples[b] = raw
}

// observe fetches the birth-instant snapshot and the sunrise snapshot of the
// civil birth date. A date without sunrise yields a nil sunrise snapshot.
func (s *Service) observe(ctx context.Context, birth models.BirthInput) (*observation, error) {
	nodes := jyotish.NodeModelFor(birth.NodeMode)
	obs := &observation{natal: models.Snapshot{Instant: birth.Instant}}
	natal := &sampleSet{samples: make(map[models.Body]models.RawSample)}
	var houses models.HouseCusps
	var riseSet models.RiseSet
	noSunrise := false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := call(gctx, s.callTimeout(), func(ctx context.Context) (float64, error) {
			return s.provider.Ayanamsa(ctx, birth.Instant)
		})
		if err != nil {
			return fmt.Errorf("failed to fetch ayanamsa: %w", err)
		}
		obs.natal.Ayanamsa = v
		return nil
	})
	g.Go(func() error {
		v, err := call(gctx, s.callTimeout(), func(ctx context.Context) (models.HouseCusps, error) {
			return s.provider.Houses(ctx, birth.Instant, birth.Location, birth.HouseSystem)
		})
		if err != nil {
			return fmt.Errorf("failed to fetch house cusps: %w", err)
		}
		houses = v
		return nil
	})
	for _, b := range birth.Bodies() {
		if b == models.Ketu {
			continue
		}
		body := b
		g.Go(func() error {
			raw, err := call(gctx, s.callTimeout(), func(ctx context.Context) (models.RawSample, error) {
				return s.provider.Position(ctx, birth.Instant, ephemeris.BodyID(body, nodes.ProviderBody()))
			})
			if err != nil {
				return fmt.Errorf("failed to fetch %s position: %w", body, err)
			}
			natal.put(body, raw)
			return nil
		})
	}
	g.Go(func() error {
		v, err := call(gctx, s.callTimeout(), func(ctx context.Context) (models.RiseSet, error) {
			return s.provider.RiseSet(ctx, birth.LocalDate(), birth.Location)
		})
		if errors.Is(err, ephemeris.ErrNoEvent) {
			noSunrise = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch sunrise: %w", err)
		}
		riseSet = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	obs.natal.Samples = natal.samples
	obs.natal.Houses = &houses

	if noSunrise {
		s.log.WithField("date", birth.Date).Info("No sunrise on birth date, panchang anchored at birth")
		return obs, nil
	}
	obs.riseSet = &riseSet
	sunrise, err := s.sunSnapshot(ctx, riseSet.Sunrise)
	if err != nil {
		return nil, err
	}
	obs.sunrise = sunrise
	return obs, nil
}

// sunSnapshot samples the Sun, the Moon and the ayanamsa at one instant
func (s *Service) sunSnapshot(ctx context.Context, instant time.Time) (*models.Snapshot, error) {
	snap := &models.Snapshot{Instant: instant}
	set := &sampleSet{samples: make(map[models.Body]models.RawSample, 2)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := call(gctx, s.callTimeout(), func(ctx context.Context) (float64, error) {
			return s.provider.Ayanamsa(ctx, instant)
		})
		if err != nil {
			return fmt.Errorf("failed to fetch sunrise ayanamsa: %w", err)
		}
		snap.Ayanamsa = v
		return nil
	})
	for _, b := range []models.Body{models.Sun, models.Moon} {
		body := b
		g.Go(func() error {
			raw, err := call(gctx, s.callTimeout(), func(ctx context.Context) (models.RawSample, error) {
				return s.provider.Position(ctx, instant, ephemeris.BodyID(body, ""))
			})
			if err != nil {
				return fmt.Errorf("failed to fetch sunrise %s position: %w", body, err)
			}
			set.put(body, raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.Samples = set.samples
	return snap, nil
}

// call bounds one provider call, retries included, by the call timeout
func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

func (s *Service) callTimeout() time.Duration {
	retries := time.Duration(s.config.EphemerisRetries)
	return s.config.EphemerisTimeout*(retries+1) + s.config.EphemerisRetryBackoff*retries*(retries+1)/2
}
