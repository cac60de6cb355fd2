package main

import (
	"net/http"

	"github.com/webgfx/galaxy"
)

// serveMetrics exposes the simulation collectors for scraping.
func serveMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", galaxy.MetricsHandler())
	return http.ListenAndServe(addr, mux)
}
