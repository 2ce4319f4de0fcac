package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"threadcache-backend/lib/configutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

func (c OtlpConnConfig) Enabled() bool {
	return c.GrpcEndpoint != "" || c.HttpEndpoint != ""
}

type OtlpConfig struct {
	Traces  OtlpConnConfig `json:"traces"`
	Metrics OtlpConnConfig `json:"metrics"`
}

type Config struct {
	Otlp OtlpConfig `json:"otlp"`
}

var (
	lock           sync.Mutex
	tracerProvider *trace.TracerProvider
	meterProvider  *metric.MeterProvider
)

// Setup installs the global tracer and meter providers. A signal without an
// endpoint is left on the otel no-op provider.
func Setup(ctx context.Context, serviceName string, config Config) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	lock.Lock()
	defer lock.Unlock()

	r, err := newResource(serviceName)
	if err != nil {
		return err
	}

	if config.Otlp.Traces.Enabled() {
		tp, err := newTraceProvider(ctx, r, config)
		if err != nil {
			return err
		}
		tracerProvider = tp
		otel.SetTracerProvider(tp)
	}

	if config.Otlp.Metrics.Enabled() {
		mp, err := newMetricProvider(ctx, r, config)
		if err != nil {
			return err
		}
		meterProvider = mp
		otel.SetMeterProvider(mp)
	}

	return nil
}

// SetupFromEnv searches up the filesystem from the cwd for a file called
// telemetry.json5 and sets telemetry up with it. Without such a file
// telemetry stays disabled.
func SetupFromEnv(ctx context.Context, serviceName string) error {
	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if errors.Is(err, configutil.ErrNotFound) {
		slog.Debug("no telemetry config found, exporters disabled")
		return nil
	}
	if err != nil {
		return err
	}
	return Setup(ctx, serviceName, config)
}

// Shutdown flushes and stops the providers installed by Setup.
func Shutdown(ctx context.Context) error {
	lock.Lock()
	defer lock.Unlock()

	errlist := []error{}
	if tracerProvider != nil {
		err := tracerProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
		tracerProvider = nil
	}
	if meterProvider != nil {
		err := meterProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
		meterProvider = nil
	}
	return errors.Join(errlist...)
}
