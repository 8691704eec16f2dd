package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		QueueJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_queue_joins_total",
			Help: "The total number of successful queue joins.",
		}),
		JoinRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_queue_join_rejections_total",
			Help: "The total number of queue joins rejected before any write.",
		}),
		QueueLeaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_queue_leaves_total",
			Help: "The total number of successful queue leaves.",
		}),
		EntriesDeactivated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_queue_entries_deactivated_total",
			Help: "The total number of queue entries transitioned to inactive.",
		}),
		JoinDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bracket_queue_join_duration_seconds",
			Help:    "The duration of individual queue join requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bracket_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.QueueJoins,
		s.JoinRejections,
		s.QueueLeaves,
		s.EntriesDeactivated,
		s.JoinDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncQueueJoins() {
	s.QueueJoins.Inc()
}

func (s *Service) IncJoinRejections() {
	s.JoinRejections.Inc()
}

func (s *Service) IncQueueLeaves() {
	s.QueueLeaves.Inc()
}

func (s *Service) AddEntriesDeactivated(count float64) {
	s.EntriesDeactivated.Add(count)
}

func (s *Service) ObserveJoinDuration(duration float64) {
	s.JoinDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
