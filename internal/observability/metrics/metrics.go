package metrics

import "github.com/prometheus/client_golang/prometheus"

// APIMetrics exposes counters/histograms for the chat and audio flows.
type APIMetrics struct {
	chatTotal   *prometheus.CounterVec
	chatLatency *prometheus.HistogramVec
	sttTotal    *prometheus.CounterVec
	ttsTotal    *prometheus.CounterVec
	ttsBytes    prometheus.Histogram
}

func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	m := &APIMetrics{
		chatTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medconsult",
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Total chat requests",
		}, []string{"language", "status"}),
		chatLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medconsult",
			Subsystem: "chat",
			Name:      "latency_seconds",
			Help:      "Latency of chat request processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"language"}),
		sttTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medconsult",
			Subsystem: "stt",
			Name:      "requests_total",
			Help:      "Total speech-to-text requests",
		}, []string{"status"}),
		ttsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medconsult",
			Subsystem: "tts",
			Name:      "requests_total",
			Help:      "Total text-to-speech requests",
		}, []string{"status"}),
		ttsBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "medconsult",
			Subsystem: "tts",
			Name:      "synthesized_bytes",
			Help:      "Size of synthesized audio payloads",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.chatTotal, m.chatLatency, m.sttTotal, m.ttsTotal, m.ttsBytes)
	return m
}

func (m *APIMetrics) ObserveChat(language, status string, seconds float64) {
	if m == nil {
		return
	}
	m.chatTotal.WithLabelValues(language, status).Inc()
	m.chatLatency.WithLabelValues(language).Observe(seconds)
}

func (m *APIMetrics) ObserveSTT(status string) {
	if m == nil {
		return
	}
	m.sttTotal.WithLabelValues(status).Inc()
}

func (m *APIMetrics) ObserveTTS(status string, bytes int) {
	if m == nil {
		return
	}
	m.ttsTotal.WithLabelValues(status).Inc()
	if bytes > 0 {
		m.ttsBytes.Observe(float64(bytes))
	}
}
