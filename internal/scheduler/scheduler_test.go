package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/models"
)

type fakeComputer struct {
	gotDate time.Time
	gotLoc  models.Location
	err     error
}

func (f *fakeComputer) DailyPanchang(_ context.Context, date time.Time, loc models.Location) (models.PanchangDay, error) {
	f.gotDate, f.gotLoc = date, loc
	if f.err != nil {
		return models.PanchangDay{}, f.err
	}
	return models.PanchangDay{Tithi: "Shashthi", TithiNumber: 6, Anchor: models.AnchorSunrise}, nil
}

type fakeNotifier struct {
	to   []string
	sent []models.DailyPanchang
	err  error
}

func (f *fakeNotifier) SendPanchangDigest(to []string, d models.DailyPanchang) error {
	f.to = to
	f.sent = append(f.sent, d)
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		DigestSchedule:   "0 5 * * *",
		DigestTimezone:   "Asia/Kolkata",
		DigestLatitude:   28.6139,
		DigestLongitude:  77.209,
		DigestRecipients: []string{"a@example.com"},
	}
}

func TestRunStoresAndMails(t *testing.T) {
	log, _ := test.NewNullLogger()
	svc := &fakeComputer{}
	n := &fakeNotifier{}
	s, err := New(testConfig(), svc, n, log)
	require.NoError(t, err)
	// 20:00 UTC is already the next day in India
	s.now = func() time.Time { return time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC) }

	_, ok := s.Latest()
	assert.False(t, ok)

	require.NoError(t, s.Run(context.Background()))
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "2026-10-17", latest.Date)
	assert.Equal(t, "Asia/Kolkata", latest.Timezone)
	assert.Equal(t, 6, latest.Panchang.TithiNumber)
	assert.Equal(t, 17, svc.gotDate.Day())
	assert.InDelta(t, 28.6139, svc.gotLoc.Latitude, 1e-12)

	require.Len(t, n.sent, 1)
	assert.Equal(t, []string{"a@example.com"}, n.to)
}

func TestRunWithoutNotifier(t *testing.T) {
	log, _ := test.NewNullLogger()
	s, err := New(testConfig(), &fakeComputer{}, nil, log)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))
	_, ok := s.Latest()
	assert.True(t, ok)
}

func TestRunKeepsPreviousResultOnFailure(t *testing.T) {
	log, _ := test.NewNullLogger()
	svc := &fakeComputer{}
	s, err := New(testConfig(), svc, nil, log)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	svc.err = errors.New("provider down")
	assert.ErrorContains(t, s.Run(context.Background()), "failed to compute daily panchang")
	_, ok := s.Latest()
	assert.True(t, ok)
}

func TestRunReportsMailFailure(t *testing.T) {
	log, _ := test.NewNullLogger()
	s, err := New(testConfig(), &fakeComputer{}, &fakeNotifier{err: errors.New("smtp down")}, log)
	require.NoError(t, err)
	assert.ErrorContains(t, s.Run(context.Background()), "smtp down")
	_, ok := s.Latest()
	assert.True(t, ok)
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := testConfig()
	cfg.DigestSchedule = "every morning"
	_, err := New(cfg, &fakeComputer{}, nil, log)
	assert.ErrorContains(t, err, "DIGEST_SCHEDULE")
}

func TestStartStop(t *testing.T) {
	log, _ := test.NewNullLogger()
	s, err := New(testConfig(), &fakeComputer{}, nil, log)
	require.NoError(t, err)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
