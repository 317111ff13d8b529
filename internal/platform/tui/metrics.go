package tui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

// Metrics holds the server's Prometheus collectors. Labels are bounded:
// no per-user or per-address values.
type Metrics struct {
	registry *prometheus.Registry

	sessionsActive   prometheus.Gauge
	sessionsTotal    prometheus.Counter
	sessionsRejected *prometheus.CounterVec // reason: "rate_limit", "no_pty"
	ticks            prometheus.Counter
	points           *prometheus.CounterVec // scorer: "player", "ai"
	collisions       prometheus.Counter
	matchesSaved     prometheus.Counter
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pong_sessions_active",
			Help: "Currently connected SSH sessions",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pong_sessions_total",
			Help: "SSH sessions accepted",
		}),
		sessionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pong_sessions_rejected_total",
			Help: "SSH sessions refused before a game started",
		}, []string{"reason"}),
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "pong_ticks_total",
			Help: "Simulation ticks stepped across all sessions",
		}),
		points: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pong_points_total",
			Help: "Points scored across all sessions",
		}, []string{"scorer"}),
		collisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "pong_collisions_total",
			Help: "Ball collisions across all sessions",
		}),
		matchesSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "pong_matches_saved_total",
			Help: "Matches written to the history database",
		}),
	}
}

// SessionStarted records an accepted session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
	m.sessionsTotal.Inc()
}

// SessionEnded records a closed session.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// SessionRejected records a refused session.
func (m *Metrics) SessionRejected(reason string) {
	if m == nil {
		return
	}
	m.sessionsRejected.WithLabelValues(reason).Inc()
}

// ObserveTick records one game step.
func (m *Metrics) ObserveTick(playerPoints, aiPoints, collisions int) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	if playerPoints > 0 {
		m.points.WithLabelValues(pong.ScoredPlayer.String()).Add(float64(playerPoints))
	}
	if aiPoints > 0 {
		m.points.WithLabelValues(pong.ScoredAI.String()).Add(float64(aiPoints))
	}
	if collisions > 0 {
		m.collisions.Add(float64(collisions))
	}
}

// MatchSaved records a match written to storage.
func (m *Metrics) MatchSaved() {
	if m == nil {
		return
	}
	m.matchesSaved.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// NewMetricsRouter serves /metrics and /healthz.
func NewMetricsRouter(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n")) //nolint:errcheck // best-effort health response
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	return r
}
