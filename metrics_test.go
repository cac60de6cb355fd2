package galaxy

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	observeFrame(1.5)
	setPausedMetric(true)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(w, req)

	body := w.Body.String()
	for _, name := range []string{"galaxy_frames_total", "galaxy_sim_seconds", "galaxy_paused"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
