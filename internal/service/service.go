package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/integrations/ephemeris"
	"github.com/Dan9191/kundli-service/internal/jyotish"
	"github.com/Dan9191/kundli-service/internal/metrics"
	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/validation"
)

// Service handles business logic
type Service struct {
	provider ephemeris.Provider
	validate *validation.Validator
	log      *logrus.Logger
	config   *config.Config
	metrics  *metrics.Collector
	now      func() time.Time
}

// NewService initializes a new service
func NewService(provider ephemeris.Provider, log *logrus.Logger, cfg *config.Config, m *metrics.Collector) *Service {
	return &Service{
		provider: provider,
		validate: validation.New(),
		log:      log,
		config:   cfg,
		metrics:  m,
		now:      time.Now,
	}
}

// Chart validates a birth request and computes the full natal chart
func (s *Service) Chart(ctx context.Context, req models.ChartRequest) (*models.Chart, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	birth, err := ParseBirth(req)
	if err != nil {
		return nil, err
	}
	asOf, err := parseAsOf(req.AsOf, s.now())
	if err != nil {
		return nil, err
	}

	obs, err := s.observe(ctx, birth)
	if err != nil {
		return nil, err
	}
	chart, err := jyotish.Compute(jyotish.ChartInput{
		Birth:   birth,
		Natal:   obs.natal,
		Sunrise: obs.sunrise,
		RiseSet: obs.riseSet,
		AsOf:    asOf,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ChartComputed()
	s.log.WithFields(logrus.Fields{
		"instant":      birth.Instant.UTC().Format(time.RFC3339),
		"house_system": birth.HouseSystem,
		"profile":      birth.PropertyProfile,
	}).Debug("Chart computed")
	return chart, nil
}

// Panchang returns the panchang of the birth date
func (s *Service) Panchang(ctx context.Context, req models.ChartRequest) (models.PanchangDay, error) {
	chart, err := s.Chart(ctx, req)
	if err != nil {
		return models.PanchangDay{}, err
	}
	return chart.Panchang, nil
}

// Dasha returns the Vimshottari timeline and the periods running at asOf
func (s *Service) Dasha(ctx context.Context, req models.ChartRequest) (models.Dasha, error) {
	chart, err := s.Chart(ctx, req)
	if err != nil {
		return models.Dasha{}, err
	}
	return chart.Dasha, nil
}

// Doshas returns the dosha presence flags
func (s *Service) Doshas(ctx context.Context, req models.ChartRequest) ([]models.Dosha, error) {
	chart, err := s.Chart(ctx, req)
	if err != nil {
		return nil, err
	}
	return chart.Doshas, nil
}

// Divisional returns one varga chart. The key is case-insensitive.
func (s *Service) Divisional(ctx context.Context, req models.DivisionalRequest) (models.DivisionalChart, error) {
	if err := s.validate.Validate(req); err != nil {
		return models.DivisionalChart{}, err
	}
	key := strings.ToUpper(strings.TrimSpace(req.Chart))
	if !jyotish.IsVarga(key) {
		return models.DivisionalChart{}, &jyotish.UnknownVargaError{Key: req.Chart}
	}
	chart, err := s.Chart(ctx, req.ChartRequest)
	if err != nil {
		return models.DivisionalChart{}, err
	}
	return chart.Divisional[key], nil
}

// RenderInput builds the chart renderer payload
func (s *Service) RenderInput(ctx context.Context, req models.RenderInputRequest) (models.RenderRequest, error) {
	if err := s.validate.Validate(req); err != nil {
		return models.RenderRequest{}, err
	}
	req.ChartRequest.IncludeOuterPlanets = req.ChartRequest.IncludeOuterPlanets || req.Options.IncludeOuterPlanets
	chart, err := s.Chart(ctx, req.ChartRequest)
	if err != nil {
		return models.RenderRequest{}, err
	}
	return models.NewRenderRequest(chart, req.Options), nil
}

// DailyPanchang computes the panchang of a civil date at a location. On a
// date without sunrise it is evaluated at local noon.
func (s *Service) DailyPanchang(ctx context.Context, date time.Time, loc models.Location) (models.PanchangDay, error) {
	zone := date.Location()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, zone)

	riseSet, err := call(ctx, s.callTimeout(), func(ctx context.Context) (models.RiseSet, error) {
		return s.provider.RiseSet(ctx, day, loc)
	})
	anchor := models.AnchorSunrise
	instant := riseSet.Sunrise
	var rs *models.RiseSet
	switch {
	case err == nil:
		rs = &riseSet
	case errors.Is(err, ephemeris.ErrNoEvent):
		anchor = models.AnchorNoon
		instant = time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, zone)
	default:
		return models.PanchangDay{}, fmt.Errorf("failed to fetch sunrise: %w", err)
	}

	snap, err := s.sunSnapshot(ctx, instant)
	if err != nil {
		return models.PanchangDay{}, err
	}
	return jyotish.PanchangAt(*snap, anchor, zone, rs)
}
