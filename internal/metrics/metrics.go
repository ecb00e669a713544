package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "blogmedia"

// Upload outcomes recorded by ImageMetrics.ObserveUpload.
const (
	ResultOK         = "ok"
	ResultValidation = "validation"
	ResultBusy       = "busy"
	ResultProcessing = "processing"
	ResultStore      = "store"
	ResultPersist    = "persist"
)

// Pipeline stages timed by ImageMetrics.ObserveStage.
const (
	StageProcess = "process"
	StageUpload  = "upload"
	StagePersist = "persist"
)

// ImageMetrics exports image pipeline metrics. A nil *ImageMetrics is a no-op.
type ImageMetrics struct {
	uploads       *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	storedBytes   *prometheus.CounterVec
}

// NewImageMetrics registers the pipeline collectors on reg, reusing
// collectors that are already registered under the same name.
func NewImageMetrics(reg prometheus.Registerer) (*ImageMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &ImageMetrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_uploads_total",
			Help:      "Image upload requests by outcome.",
		}, []string{"result"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "image_stage_duration_seconds",
			Help:      "Latency of image pipeline stages.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		storedBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_stored_bytes_total",
			Help:      "Bytes written to object storage by variant.",
		}, []string{"variant"}),
	}

	var err error
	if m.uploads, err = register(reg, m.uploads); err != nil {
		return nil, err
	}
	if m.stageDuration, err = register(reg, m.stageDuration); err != nil {
		return nil, err
	}
	if m.storedBytes, err = register(reg, m.storedBytes); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}

// ObserveUpload counts one finished upload request.
func (m *ImageMetrics) ObserveUpload(result string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(result).Inc()
}

// ObserveStage records how long a pipeline stage took.
func (m *ImageMetrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// AddStoredBytes adds n bytes written for variant.
func (m *ImageMetrics) AddStoredBytes(variant string, n int) {
	if m == nil {
		return
	}
	m.storedBytes.WithLabelValues(variant).Add(float64(n))
}
