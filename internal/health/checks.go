package health

import (
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/clients"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const upstreamTimeout = 3 * time.Second

// NewHealthHandler reports the storefront's own dependencies as hard checks.
// Backend services are soft checks: an outage degrades the status to
// "Partially Available" instead of failing the probe.
func NewHealthHandler(cfg *config.Config, version string, upstreams []clients.Pinger) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		},
	}

	checks = append(checks, UpstreamChecks(upstreams)...)

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func UpstreamChecks(upstreams []clients.Pinger) []health.Config {

	checks := make([]health.Config, 0, len(upstreams))

	for _, upstream := range upstreams {
		checks = append(checks, health.Config{
			Name:      upstream.Service() + "-service",
			Timeout:   upstreamTimeout,
			SkipOnErr: true,
			Check:     upstream.Ping,
		})
	}

	return checks
}
