package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpoints(t *testing.T) {
	err := Setup(context.Background(), "threadcache-test", Config{})
	require.NoError(t, err)
	require.Nil(t, tracerProvider)
	require.Nil(t, meterProvider)
	require.NoError(t, Shutdown(context.Background()))
}

func TestTransport(t *testing.T) {
	kind, endpoint := OtlpConnConfig{HttpEndpoint: "http://localhost:4318"}.transport()
	require.Equal(t, "http", kind)
	require.Equal(t, "http://localhost:4318", endpoint)

	kind, endpoint = OtlpConnConfig{
		GrpcEndpoint: "http://localhost:4317",
		HttpEndpoint: "http://localhost:4318",
	}.transport()
	require.Equal(t, "grpc", kind)
	require.Equal(t, "http://localhost:4317", endpoint)
}
