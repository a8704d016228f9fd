package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.Submission("success")
	m.Submission("success")
	m.Lookup("error")
	m.SetOpenForms(3)
	m.ObserveUpload(0.2)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Submissions.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Lookups.WithLabelValues("error")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.OpenForms))
	assert.Equal(t, 1, testutil.CollectAndCount(m.UploadLatency))
}

func TestMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestMetricsNil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Submission("failed")
		m.Lookup("ok")
		m.ObserveUpload(1)
		m.SetOpenForms(0)
	})
}
