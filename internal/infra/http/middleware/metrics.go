package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of leads stored",
		},
		[]string{"source"},
	)

	leadNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_notifications_total",
			Help: "Lead notification e-mails by outcome",
		},
		[]string{"status"},
	)

	landingPageViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_page_views_total",
			Help: "Public landing page renders",
		},
		[]string{"slug", "cache"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Metrics records request counts and latency labelled by route pattern, so
// /landing/{slug} is one series no matter how many slugs exist.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		path := routePattern(r)
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func RecordLeadCaptured(source string) {
	leadsCaptured.WithLabelValues(source).Inc()
}

func RecordNotification(status string) {
	leadNotifications.WithLabelValues(status).Inc()
}

func RecordPageView(slug string, cached bool) {
	label := "miss"
	if cached {
		label = "hit"
	}
	landingPageViews.WithLabelValues(slug, label).Inc()
}
