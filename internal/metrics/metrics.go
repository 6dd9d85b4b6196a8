package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects bridge-level counters exposed on /metrics.
type Metrics struct {
	pollsTotal      prometheus.Counter
	pollErrorsTotal prometheus.Counter
	commandsTotal   *prometheus.CounterVec
	commandErrors   *prometheus.CounterVec
	devices         prometheus.Gauge
	lastPollSuccess prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pollsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hive2mqtt_polls_total",
			Help: "Device polls attempted against the Hive API",
		}),
		pollErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hive2mqtt_poll_errors_total",
			Help: "Device polls that failed",
		}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hive2mqtt_commands_total",
			Help: "Commands forwarded to the Hive API by kind",
		}, []string{"command"}),
		commandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hive2mqtt_command_errors_total",
			Help: "Commands rejected by the Hive API by kind",
		}, []string{"command"}),
		devices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hive2mqtt_devices",
			Help: "Device records known after the last successful poll",
		}),
		lastPollSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hive2mqtt_last_poll_success_timestamp_seconds",
			Help: "Last successful poll timestamp (epoch seconds)",
		}),
	}
	reg.MustRegister(m.pollsTotal, m.pollErrorsTotal, m.commandsTotal, m.commandErrors, m.devices, m.lastPollSuccess)
	return m
}

func (m *Metrics) PollStarted() {
	m.pollsTotal.Inc()
}

func (m *Metrics) PollFailed() {
	m.pollErrorsTotal.Inc()
}

func (m *Metrics) PollSucceeded(deviceCount int) {
	m.devices.Set(float64(deviceCount))
	m.lastPollSuccess.Set(float64(time.Now().Unix()))
}

func (m *Metrics) CommandSent(command string) {
	m.commandsTotal.WithLabelValues(command).Inc()
}

func (m *Metrics) CommandFailed(command string) {
	m.commandErrors.WithLabelValues(command).Inc()
}
