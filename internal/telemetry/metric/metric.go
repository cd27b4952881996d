package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics. A nil *Metrics is valid and
// records nothing, so instrumentation call sites need no guards.
type Metrics struct {
	registry *prometheus.Registry

	connectionsActive prometheus.Gauge
	connectionsTotal  prometheus.Counter
	commandsTotal     *prometheus.CounterVec
	commandErrors     prometheus.Counter
	protocolErrors    prometheus.Counter
}

// New creates and registers the application metrics. keyCount, when
// non-nil, backs a gauge reporting the number of stored keys at scrape
// time.
func New(keyCount func() int) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		connectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "respkv_connections_active",
			Help: "Number of currently open client connections.",
		}),
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "respkv_connections_total",
			Help: "Total number of accepted client connections.",
		}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "respkv_commands_total",
			Help: "Total number of executed commands by name.",
		}, []string{"command"}),
		commandErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "respkv_command_errors_total",
			Help: "Total number of requests rejected at parse time.",
		}),
		protocolErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "respkv_protocol_errors_total",
			Help: "Total number of connections closed on malformed framing.",
		}),
	}

	reg.MustRegister(
		m.connectionsActive,
		m.connectionsTotal,
		m.commandsTotal,
		m.commandErrors,
		m.protocolErrors,
	)

	if keyCount != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "respkv_keys_stored",
			Help: "Number of keys currently stored.",
		}, func() float64 {
			return float64(keyCount())
		}))
	}

	return m
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ConnOpened records an accepted connection.
func (m *Metrics) ConnOpened() {
	if m == nil {
		return
	}
	m.connectionsTotal.Inc()
	m.connectionsActive.Inc()
}

// ConnClosed records a finished connection.
func (m *Metrics) ConnClosed() {
	if m == nil {
		return
	}
	m.connectionsActive.Dec()
}

// CommandExecuted records one executed command by canonical name.
func (m *Metrics) CommandExecuted(name string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(name).Inc()
}

// CommandRejected records a request that failed command parsing.
func (m *Metrics) CommandRejected() {
	if m == nil {
		return
	}
	m.commandErrors.Inc()
}

// ProtocolError records a connection terminated on malformed framing.
func (m *Metrics) ProtocolError() {
	if m == nil {
		return
	}
	m.protocolErrors.Inc()
}
