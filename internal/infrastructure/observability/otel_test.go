package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordHelpersNoopBeforeInit(t *testing.T) {
	defaultMetrics = nil

	RecordUpstreamMetric(context.Background(), "/doctors", time.Millisecond)
	RecordSessionEvent(context.Background(), "session.signed_in")
}

func TestAllInstrumentsRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { defaultMetrics = nil })

	metrics, err := InitMetrics()
	require.NoError(t, err)

	RecordRequestMetric(context.Background(), metrics, "GET", "/api/doctors", 200, 5*time.Millisecond)
	RecordUpstreamMetric(context.Background(), "/appointments/request", 20*time.Millisecond)
	RecordSessionEvent(context.Background(), "session.signed_out")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	recorded := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			recorded[m.Name] = true
		}
	}
	assert.True(t, recorded["http.server.request.count"])
	assert.True(t, recorded["http.server.request.duration"])
	assert.True(t, recorded["hospital.request.duration"])
	assert.True(t, recorded["session.event.count"])
}
