package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/metrics"
	"github.com/Dan9191/kundli-service/internal/models"
)

// scriptedProvider fails its first failures calls with err, then answers
type scriptedProvider struct {
	mu       sync.Mutex
	calls    int
	failures int
	err      error
}

func (p *scriptedProvider) next() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= p.failures {
		return p.err
	}
	return nil
}

func (p *scriptedProvider) Position(_ context.Context, _ time.Time, body string) (models.RawSample, error) {
	if err := p.next(); err != nil {
		return models.RawSample{}, err
	}
	return models.RawSample{Longitude: 54.6, Speed: 0.96}, nil
}

func (p *scriptedProvider) Ayanamsa(context.Context, time.Time) (float64, error) {
	if err := p.next(); err != nil {
		return 0, err
	}
	return 23.72, nil
}

func (p *scriptedProvider) Houses(context.Context, time.Time, models.Location, models.HouseSystem) (models.HouseCusps, error) {
	if err := p.next(); err != nil {
		return models.HouseCusps{}, err
	}
	return models.HouseCusps{Ascendant: 181.12}, nil
}

func (p *scriptedProvider) RiseSet(context.Context, time.Time, models.Location) (models.RiseSet, error) {
	if err := p.next(); err != nil {
		return models.RiseSet{}, err
	}
	return models.RiseSet{Sunrise: birthInstant}, nil
}

func fastConfig() ResilienceConfig {
	cfg := DefaultResilienceConfig()
	cfg.Backoff = time.Millisecond
	return cfg
}

func TestResilientRetriesTransientFailures(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := &scriptedProvider{failures: 2, err: ErrUnavailable}
	r := NewResilientProvider(p, fastConfig(), log, metrics.NewCollector("test"))

	v, err := r.Ayanamsa(context.Background(), birthInstant)
	require.NoError(t, err)
	assert.InDelta(t, 23.72, v, 1e-12)
	assert.Equal(t, 3, p.calls)
}

func TestResilientGivesUpAfterRetries(t *testing.T) {
	log, hook := test.NewNullLogger()
	p := &scriptedProvider{failures: 10, err: ErrUnavailable}
	r := NewResilientProvider(p, fastConfig(), log, nil)

	_, err := r.Position(context.Background(), birthInstant, "sun")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, p.calls)
	assert.Len(t, hook.AllEntries(), 3)
}

func TestResilientDoesNotRetryDomainErrors(t *testing.T) {
	log, _ := test.NewNullLogger()
	for _, domainErr := range []error{ErrOutOfRange, ErrNoEvent} {
		p := &scriptedProvider{failures: 10, err: domainErr}
		r := NewResilientProvider(p, fastConfig(), log, nil)

		_, err := r.RiseSet(context.Background(), birthInstant, models.Location{})
		assert.ErrorIs(t, err, domainErr)
		assert.Equal(t, 1, p.calls)
	}
}

func TestResilientDomainErrorsDoNotTripTheBreaker(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := fastConfig()
	cfg.Retries = 0
	cfg.MinRequests = 2
	p := &scriptedProvider{failures: 20, err: ErrOutOfRange}
	r := NewResilientProvider(p, cfg, log, nil)

	for i := 0; i < 10; i++ {
		_, err := r.Ayanamsa(context.Background(), birthInstant)
		require.ErrorIs(t, err, ErrOutOfRange)
	}
	assert.Equal(t, 10, p.calls)
}

func TestResilientBreakerOpens(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := fastConfig()
	cfg.Retries = 0
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	p := &scriptedProvider{failures: 100, err: errors.New("connection reset")}
	r := NewResilientProvider(p, cfg, log, metrics.NewCollector("test"))

	for i := 0; i < 2; i++ {
		_, err := r.Ayanamsa(context.Background(), birthInstant)
		require.Error(t, err)
	}
	_, err := r.Ayanamsa(context.Background(), birthInstant)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, p.calls, "open breaker must not reach the provider")
}

func TestResilientStopsOnCancelledContext(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := fastConfig()
	cfg.Backoff = time.Hour
	p := &scriptedProvider{failures: 10, err: ErrUnavailable}
	r := NewResilientProvider(p, cfg, log, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.Ayanamsa(ctx, birthInstant)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, p.calls)
}

// fanOutProvider rejects Ayanamsa as out of range. Until healthy, Position
// blocks until its context is cancelled and then fails like the transport.
type fanOutProvider struct {
	scriptedProvider
	healthy bool
}

func (p *fanOutProvider) Position(ctx context.Context, instant time.Time, body string) (models.RawSample, error) {
	if p.healthy {
		return p.scriptedProvider.Position(ctx, instant, body)
	}
	<-ctx.Done()
	return models.RawSample{}, fmt.Errorf("%w: Position request failed: %w", ErrUnavailable, ctx.Err())
}

func (p *fanOutProvider) Ayanamsa(ctx context.Context, instant time.Time) (float64, error) {
	if p.healthy {
		return p.scriptedProvider.Ayanamsa(ctx, instant)
	}
	return 0, ErrOutOfRange
}

func TestResilientCancelledSiblingsDoNotTripTheBreaker(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := &fanOutProvider{}
	r := NewResilientProvider(p, fastConfig(), log, nil)

	g, gctx := errgroup.WithContext(context.Background())
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := r.Position(gctx, birthInstant, "sun")
			return err
		})
	}
	g.Go(func() error {
		_, err := r.Ayanamsa(gctx, birthInstant)
		return err
	})
	require.ErrorIs(t, g.Wait(), ErrOutOfRange)
	assert.Equal(t, gobreaker.StateClosed, r.cb.State())

	p.healthy = true
	v, err := r.Ayanamsa(context.Background(), birthInstant)
	require.NoError(t, err)
	assert.InDelta(t, 23.72, v, 1e-12)
	_, err = r.Position(context.Background(), birthInstant, "sun")
	require.NoError(t, err)
}

func TestClientWrapsTransportCause(t *testing.T) {
	log, _ := test.NewNullLogger()
	srv := httptest.NewServer(&fakeServer{})
	srv.Close()
	c := NewClient(srv.URL, time.Second, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Ayanamsa(ctx, birthInstant)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

// memStore is an in-memory Store
type memStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	failGet bool
}

func (s *memStore) GetSample(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.failGet {
		return nil, false, errors.New("database is down")
	}
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *memStore) PutSample(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = payload
	return nil
}

func TestCachedProviderMemoizes(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := &scriptedProvider{}
	c, err := NewCachedProvider(p, 16, nil, log, metrics.NewCollector("test"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		s, err := c.Position(context.Background(), birthInstant, "sun")
		require.NoError(t, err)
		assert.InDelta(t, 54.6, s.Longitude, 1e-12)
	}
	assert.Equal(t, 1, p.calls)

	_, err = c.Position(context.Background(), birthInstant, "moon")
	require.NoError(t, err)
	_, err = c.Position(context.Background(), birthInstant.Add(time.Second), "sun")
	require.NoError(t, err)
	assert.Equal(t, 3, p.calls)
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := &scriptedProvider{failures: 1, err: ErrNoEvent}
	c, err := NewCachedProvider(p, 16, nil, log, nil)
	require.NoError(t, err)

	_, err = c.RiseSet(context.Background(), birthInstant, models.Location{})
	assert.ErrorIs(t, err, ErrNoEvent)
	_, err = c.RiseSet(context.Background(), birthInstant, models.Location{})
	assert.NoError(t, err)
	assert.Equal(t, 2, p.calls)
}

func TestCachedProviderUsesStore(t *testing.T) {
	log, _ := test.NewNullLogger()
	store := &memStore{entries: map[string][]byte{}}
	p := &scriptedProvider{}

	first, err := NewCachedProvider(p, 16, store, log, nil)
	require.NoError(t, err)
	_, err = first.Houses(context.Background(), birthInstant, models.Location{Latitude: 1, Longitude: 2}, models.Placidus)
	require.NoError(t, err)
	assert.Len(t, store.entries, 1)

	// a fresh memory cache is filled from the store without calling the provider
	second, err := NewCachedProvider(p, 16, store, log, nil)
	require.NoError(t, err)
	h, err := second.Houses(context.Background(), birthInstant, models.Location{Latitude: 1, Longitude: 2}, models.Placidus)
	require.NoError(t, err)
	assert.InDelta(t, 181.12, h.Ascendant, 1e-12)
	assert.Equal(t, 1, p.calls)
}

func TestCachedProviderSurvivesStoreFailure(t *testing.T) {
	log, hook := test.NewNullLogger()
	store := &memStore{entries: map[string][]byte{}, failGet: true}
	p := &scriptedProvider{}
	c, err := NewCachedProvider(p, 16, store, log, nil)
	require.NoError(t, err)

	v, err := c.Ayanamsa(context.Background(), birthInstant)
	require.NoError(t, err)
	assert.InDelta(t, 23.72, v, 1e-12)
	assert.Equal(t, 1, p.calls)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Ephemeris store lookup failed", hook.LastEntry().Message)
}

func TestCachedProviderRejectsInvalidSize(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := NewCachedProvider(&scriptedProvider{}, 0, nil, log, nil)
	assert.Error(t, err)
}

func TestNewProviderFromConfig(t *testing.T) {
	log, _ := test.NewNullLogger()
	f := &fakeServer{responses: map[string]string{
		"Ayanamsa": envelope("Ayanamsa", `<Value>23.72</Value>`),
	}}
	srv := httptest.NewServer(f)
	defer srv.Close()

	cfg := &config.Config{
		EphemerisURL:          srv.URL,
		EphemerisTimeout:      time.Second,
		EphemerisRetries:      1,
		EphemerisRetryBackoff: time.Millisecond,
		EphemerisCacheSize:    8,
	}
	p, err := NewProvider(cfg, nil, log, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		v, err := p.Ayanamsa(context.Background(), birthInstant)
		require.NoError(t, err)
		assert.InDelta(t, 23.72, v, 1e-12)
	}
	assert.Len(t, f.requests, 1)

	cfg.EphemerisCacheSize = 0
	_, err = NewProvider(cfg, nil, log, nil)
	assert.Error(t, err)
}
