package openvino

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsHook records Prometheus metrics for every bridged operation:
//
//	ovbridge_call_duration_seconds{op}      histogram
//	ovbridge_call_errors_total{op,kind}     counter
type MetricsHook struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewMetricsHook creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetricsHook(reg prometheus.Registerer) (*MetricsHook, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	h := &MetricsHook{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ovbridge",
			Name:      "call_duration_seconds",
			Help:      "Duration of OpenVINO bridge calls.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ovbridge",
			Name:      "call_errors_total",
			Help:      "OpenVINO bridge calls that failed, by failure kind.",
		}, []string{"op", "kind"}),
	}

	for _, c := range []prometheus.Collector{h.duration, h.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *MetricsHook) BeforeCall(_ *CallInfo) {}

func (h *MetricsHook) AfterCall(info *CallInfo) {
	h.duration.WithLabelValues(string(info.Op)).Observe(info.Duration.Seconds())
	if info.Error != nil {
		kind := KindOf(info.Error)
		if kind == "" {
			kind = "usage"
		}
		h.errors.WithLabelValues(string(info.Op), string(kind)).Inc()
	}
}
