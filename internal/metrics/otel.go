package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MeterProvider is an OpenTelemetry meter provider whose instruments are
// exported through a Prometheus registry.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
}

// NewMeterProvider returns a MeterProvider that registers its exporter with
// reg, so OpenTelemetry instruments appear next to the native collectors.
func NewMeterProvider(reg prometheus.Registerer) (*MeterProvider, error) {
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}
	return &MeterProvider{
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
	}, nil
}

// Provider returns the metric.MeterProvider to hand to instrumentation.
func (m *MeterProvider) Provider() metric.MeterProvider {
	return m.provider
}

// Shutdown flushes and stops the provider.
func (m *MeterProvider) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
