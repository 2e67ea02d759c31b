package uds

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instrumentation for request handle
// lifecycle. The zero value is not usable; build one with NewMetrics and
// register it with a registerer of the caller's choosing.
type Metrics struct {
	RequestsSent      prometheus.Counter
	ResponsesReceived *prometheus.CounterVec
	ActiveRequests    prometheus.Gauge
	NegativeResponses *prometheus.CounterVec
}

// NewMetrics constructs the handle-lifecycle metrics under the given
// namespace (typically the importing binary's name).
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RequestsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "uds",
			Name:      "requests_sent_total",
			Help:      "Diagnostic requests transmitted.",
		}),
		ResponsesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "uds",
			Name:      "responses_received_total",
			Help:      "Diagnostic responses received, by outcome.",
		}, []string{"outcome"}),
		ActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "uds",
			Name:      "active_requests",
			Help:      "Request handles awaiting a response.",
		}),
		NegativeResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "uds",
			Name:      "negative_responses_total",
			Help:      "Negative responses received, by NRC.",
		}, []string{"nrc"}),
	}
}

// Register registers every collector in m with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.RequestsSent, m.ResponsesReceived, m.ActiveRequests, m.NegativeResponses} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveSent records that a request finished transmitting, successfully or
// not, and adjusts the in-flight gauge.
func (m *Metrics) ObserveSent(success bool) {
	m.RequestsSent.Inc()
	if success {
		m.ActiveRequests.Inc()
	}
}

// ObserveResponse records a completed handle's terminal outcome.
func (m *Metrics) ObserveResponse(response *Response) {
	m.ActiveRequests.Dec()
	if response.Success {
		m.ResponsesReceived.WithLabelValues("positive").Inc()
		return
	}
	m.ResponsesReceived.WithLabelValues("negative").Inc()
	m.NegativeResponses.WithLabelValues(response.NegativeResponseCode.String()).Inc()
}
