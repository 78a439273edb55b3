package screen

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts pipeline activity.
type Metrics struct {
	cycles   *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	stale    prometheus.Counter
}

// NewMetrics registers the pipeline collectors on reg. A nil reg leaves the
// collectors unregistered, which is what tests usually want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_now",
			Name:      "cycles_started_total",
			Help:      "Acquisition cycles started, by trigger.",
		}, []string{"trigger"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_now",
			Name:      "cycle_outcomes_total",
			Help:      "Finished cycles, by resulting phase and reason.",
		}, []string{"phase", "reason"}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_now",
			Name:      "stale_results_discarded_total",
			Help:      "Results dropped because a newer cycle had started.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.cycles, m.outcomes, m.stale)
	}
	return m
}

func (m *Metrics) cycleStarted(trigger EventKind) {
	m.cycles.WithLabelValues(trigger.String()).Inc()
}

func (m *Metrics) cycleFinished(s State, reason EventKind) {
	m.outcomes.WithLabelValues(s.Phase.String(), reason.String()).Inc()
}

func (m *Metrics) staleDiscarded() {
	m.stale.Inc()
}
