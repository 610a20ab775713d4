package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveChatCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)

	m.ObserveChat("en", "success", 0.2)
	m.ObserveChat("en", "success", 0.4)
	m.ObserveChat("ar", "error", 0.1)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.chatTotal.WithLabelValues("en", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.chatTotal.WithLabelValues("ar", "error")))
}

func TestObserveSTTAndTTS(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)

	m.ObserveSTT("no_speech")
	m.ObserveTTS("success", 4096)
	m.ObserveTTS("error", 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.sttTotal.WithLabelValues("no_speech")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ttsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ttsTotal.WithLabelValues("error")))
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *APIMetrics
	m.ObserveChat("en", "success", 0.1)
	m.ObserveSTT("success")
	m.ObserveTTS("success", 10)
}
