package metrics

import (
	"net/http"
	"time"
)

// Timeouts for the metrics endpoint. The exporter serves small text
// responses to a scraper, so the limits are tight.
const (
	exporterReadHeaderTimeout = 5 * time.Second
	exporterReadTimeout       = 10 * time.Second
	exporterWriteTimeout      = 10 * time.Second
	exporterIdleTimeout       = 2 * time.Minute
)

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: exporterReadHeaderTimeout,
		ReadTimeout:       exporterReadTimeout,
		WriteTimeout:      exporterWriteTimeout,
		IdleTimeout:       exporterIdleTimeout,
	}
}
