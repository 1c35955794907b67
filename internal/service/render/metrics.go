package render

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

// Metrics counts render outcomes. A nil *Metrics records nothing.
type Metrics struct {
	slides   *prometheus.CounterVec
	failures *prometheus.CounterVec
	warnings *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the render collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		slides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kidase",
			Subsystem: "render",
			Name:      "slides_total",
			Help:      "Rendered slides by content source.",
		}, []string{"source"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kidase",
			Subsystem: "render",
			Name:      "slide_failures_total",
			Help:      "Slides that failed to render, by reason.",
		}, []string{"reason"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kidase",
			Subsystem: "render",
			Name:      "warnings_total",
			Help:      "Render warnings by code.",
		}, []string{"code"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kidase",
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Time to load and render one presentation.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}
	reg.MustRegister(m.slides, m.failures, m.warnings, m.duration)
	return m
}

func (m *Metrics) observe(res *domain.RenderResult, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	if res == nil {
		return
	}
	for _, s := range res.Slides {
		m.slides.WithLabelValues(string(s.Source)).Inc()
	}
	for _, f := range res.Failures {
		m.failures.WithLabelValues(failureReason(f)).Inc()
	}
	for _, w := range res.Warnings {
		m.warnings.WithLabelValues(string(w.Code)).Inc()
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTemplateMismatch):
		return "template_mismatch"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "other"
	}
}
