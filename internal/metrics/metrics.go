package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telehealth_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telehealth_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	BookingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telehealth_booking_conflicts_total",
			Help: "Bookings rejected because the occurrence was already taken.",
		},
	)

	ChatConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "telehealth_chat_connections",
			Help: "Currently open chat websocket connections.",
		},
	)
)

func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequests.WithLabelValues(
			route,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
