package ephemeris

import (
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/metrics"
)

// NewProvider assembles the SOAP client behind retries, the circuit breaker
// and the cache. store may be nil.
func NewProvider(cfg *config.Config, store Store, log *logrus.Logger, m *metrics.Collector) (*CachedProvider, error) {
	client := NewClient(cfg.EphemerisURL, cfg.EphemerisTimeout, log)

	rc := DefaultResilienceConfig()
	rc.Retries = cfg.EphemerisRetries
	rc.Backoff = cfg.EphemerisRetryBackoff
	resilient := NewResilientProvider(client, rc, log, m)

	return NewCachedProvider(resilient, cfg.EphemerisCacheSize, store, log, m)
}
