package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordItemForecast("trend")
	r.RecordItemForecast("trend")
	r.RecordItemForecast("mean")
	r.RecordBatch("http", 3)
	r.RecordError("decode")
	r.RecordLatency("batch", 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.itemsTotal.WithLabelValues("trend")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.itemsTotal.WithLabelValues("mean")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.batchesTotal.WithLabelValues("http")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("decode")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
