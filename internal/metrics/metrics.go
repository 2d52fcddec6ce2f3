package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "missionboard"

// Metrics holds the client's collectors on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	authAttempts      *prometheus.CounterVec
	xpAwarded         prometheus.Counter
	missionsCompleted prometheus.Counter
	avatarUploads     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		authAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Login and register attempts by outcome",
			},
			[]string{"op", "outcome"},
		),
		xpAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "xp_awarded_total",
			Help:      "XP credited to the signed-in player",
		}),
		missionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missions_completed_total",
			Help:      "Missions completed",
		}),
		avatarUploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "avatar_uploads_total",
				Help:      "Avatar uploads by outcome",
			},
			[]string{"outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_request_duration_seconds",
				Help:      "Backend request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "status"},
		),
	}

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.authAttempts,
		m.xpAwarded,
		m.missionsCompleted,
		m.avatarUploads,
		m.requestDuration,
	)
	return m
}


func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func (m *Metrics) AuthAttempt(op string, ok bool) {
	m.authAttempts.WithLabelValues(op, outcome(ok)).Inc()
}

func (m *Metrics) XPAwarded(amount int) {
	if amount > 0 {
		m.xpAwarded.Add(float64(amount))
	}
}

func (m *Metrics) MissionCompleted() {
	m.missionsCompleted.Inc()
}

func (m *Metrics) AvatarUpload(ok bool) {
	m.avatarUploads.WithLabelValues(outcome(ok)).Inc()
}

// ObserveRequest records a backend call. Status 0 means no response.
func (m *Metrics) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(endpoint, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
