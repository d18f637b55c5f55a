package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/freshplate/ordering-client/internal/config"
	"github.com/freshplate/ordering-client/internal/kvstore"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

type Endpoints struct {
	KV kvstore.Store
}

// NewHealthHandler wires the liveness surface: the upstream API must answer
// and the state store must round-trip a probe key. A redis backend also gets
// the connection-level check.
func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "upstream",
			Timeout:   5 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Upstream.BaseURL, nil)
				if err != nil {
					return fmt.Errorf("failed to build upstream probe: %w", err)
				}

				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					return fmt.Errorf("failed to reach upstream: %w", err)
				}
				defer resp.Body.Close()

				// Any answer counts; the root path may legitimately 404.
				if resp.StatusCode >= http.StatusInternalServerError {
					return fmt.Errorf("upstream unhealthy: status %d", resp.StatusCode)
				}

				return nil
			},
		},
		{
			Name:      "state-store",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints.KV == nil {
					return fmt.Errorf("state store is not initialized")
				}

				if err := endpoints.KV.Set("healthcheck", time.Now().Format(time.RFC3339)); err != nil {
					return fmt.Errorf("state store write failed: %w", err)
				}

				if _, _, err := endpoints.KV.Get("healthcheck"); err != nil {
					return fmt.Errorf("state store read failed: %w", err)
				}

				return nil
			},
		},
	}

	if cfg.Storage.Backend == "redis" {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "ordering-client",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
