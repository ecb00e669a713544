package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogmedia/internal/metrics"
)

func TestImageMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewImageMetrics(reg)
	require.NoError(t, err)

	m.ObserveUpload(metrics.ResultOK)
	m.ObserveUpload(metrics.ResultOK)
	m.ObserveUpload(metrics.ResultStore)
	m.ObserveStage(metrics.StageProcess, 20*time.Millisecond)
	m.AddStoredBytes("thumbnail", 1024)

	count, err := testutil.GatherAndCount(reg, "blogmedia_image_uploads_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per result label")

	histCount, err := testutil.GatherAndCount(reg, "blogmedia_image_stage_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, histCount)

	bytesCount, err := testutil.GatherAndCount(reg, "blogmedia_image_stored_bytes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, bytesCount)
}

func TestImageMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := metrics.NewImageMetrics(reg)
	require.NoError(t, err)
	second, err := metrics.NewImageMetrics(reg)
	require.NoError(t, err)

	first.ObserveUpload(metrics.ResultOK)
	second.ObserveUpload(metrics.ResultOK)

	count, err := testutil.GatherAndCount(reg, "blogmedia_image_uploads_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestImageMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.ImageMetrics
	assert.NotPanics(t, func() {
		m.ObserveUpload(metrics.ResultOK)
		m.ObserveStage(metrics.StageUpload, time.Second)
		m.AddStoredBytes("original", 1)
	})
}
