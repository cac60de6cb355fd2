package galaxy

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	framesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "galaxy_frames_total",
			Help: "Total number of completed frame loop ticks.",
		},
	)

	simSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "galaxy_sim_seconds",
			Help: "Accumulated simulated time in seconds.",
		},
	)

	pausedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "galaxy_paused",
			Help: "Whether the simulation clock is frozen (1) or running (0).",
		},
	)
)

func init() {
	prometheus.MustRegister(framesTotal)
	prometheus.MustRegister(simSeconds)
	prometheus.MustRegister(pausedGauge)
}

// MetricsHandler returns the Prometheus metrics HTTP handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func observeFrame(elapsed float64) {
	framesTotal.Inc()
	simSeconds.Set(elapsed)
}

func setPausedMetric(paused bool) {
	if paused {
		pausedGauge.Set(1)
	} else {
		pausedGauge.Set(0)
	}
}
