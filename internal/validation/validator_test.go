package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/kundli-service/internal/models"
)

func float(v float64) *float64 { return &v }

func validRequest() models.ChartRequest {
	return models.ChartRequest{
		DateOfBirth: "1990-05-15",
		TimeOfBirth: "14:30",
		Latitude:    float(28.6139),
		Longitude:   float(77.2090),
		Timezone:    "Asia/Kolkata",
	}
}

func TestValidRequest(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(validRequest()))

	req := validRequest()
	req.TimeOfBirth = "14:30:15"
	req.AsOf = "2026-10-17T00:00:00Z"
	assert.NoError(t, v.Validate(req))
}

func TestInvalidRequests(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ChartRequest)
		field  string
		code   string
	}{
		{"missing date", func(r *models.ChartRequest) { r.DateOfBirth = "" }, "dateOfBirth", "REQUIRED"},
		{"impossible date", func(r *models.ChartRequest) { r.DateOfBirth = "1990-02-30" }, "dateOfBirth", "DATETIME"},
		{"bad time", func(r *models.ChartRequest) { r.TimeOfBirth = "25:10" }, "timeOfBirth", "CLOCK"},
		{"missing latitude", func(r *models.ChartRequest) { r.Latitude = nil }, "latitude", "REQUIRED"},
		{"latitude out of range", func(r *models.ChartRequest) { r.Latitude = float(91) }, "latitude", "LTE"},
		{"longitude out of range", func(r *models.ChartRequest) { r.Longitude = float(-180.5) }, "longitude", "GTE"},
		{"unknown timezone", func(r *models.ChartRequest) { r.Timezone = "Mars/Olympus" }, "timezone", "TIMEZONE"},
		{"bad asOf", func(r *models.ChartRequest) { r.AsOf = "yesterday" }, "asOf", "DATETIME"},
	}
	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := v.Validate(req)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
			assert.Equal(t, tt.code, verr.Errors[0].Code)
		})
	}
}

func TestValidationReportsEveryField(t *testing.T) {
	err := New().Validate(models.ChartRequest{})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 5)
	assert.Contains(t, err.Error(), "timezone: This field is required")
}

func TestZeroLatitudeIsAccepted(t *testing.T) {
	req := validRequest()
	req.Latitude = float(0)
	req.Longitude = float(0)
	assert.NoError(t, New().Validate(req))
}

func TestRenderOptions(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(models.RenderOptions{}))
	assert.NoError(t, v.Validate(models.RenderOptions{Width: 1024, Theme: "dark"}))
	assert.Error(t, v.Validate(models.RenderOptions{Theme: "neon"}))
	assert.Error(t, v.Validate(models.RenderOptions{Width: 10}))
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Hour())
	assert.Equal(t, 5, c.Minute())

	c, err = ParseClock("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, 59, c.Second())

	_, err = ParseClock("9.05")
	assert.Error(t, err)
}
