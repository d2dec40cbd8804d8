// Package temporal wraps Temporal client and worker construction with the
// OTel tracing interceptors every service in this repo uses.
package temporal

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
)

type ClientConfig struct {
	HostPort  string
	Namespace string
}

func NewClient(cfg ClientConfig) (client.Client, error) {
	tracingInterceptor, err := opentelemetry.NewTracingInterceptor(opentelemetry.TracerOptions{
		Tracer: otel.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}

	opts := client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Interceptors: []interceptor.ClientInterceptor{
			tracingInterceptor,
		},
	}

	if opts.Namespace == "" {
		opts.Namespace = "default"
	}

	return client.Dial(opts)
}

// NewClientWithRetry dials the Temporal frontend with exponential backoff.
// In compose deployments the workers usually start before the server is
// ready to accept connections.
func NewClientWithRetry(ctx context.Context, cfg ClientConfig) (client.Client, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second

	return backoff.Retry(ctx, func() (client.Client, error) {
		return NewClient(cfg)
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(10),
	)
}
