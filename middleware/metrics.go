package middleware

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	panics   prometheus.Counter
	// Bookings counts reservation outcomes by operation and result.
	Bookings *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_http_requests_total",
			Help: "Total number of HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hotel_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.3, 0.6, 1, 3, 6},
		}, []string{"method", "route"}),
		panics: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_http_panics_recovered_total",
			Help: "Total number of HTTP requests recovered from internal panic.",
		}),
		Bookings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_reservations_total",
			Help: "Reservation operations by result.",
		}, []string{"operation", "result"}),
	}
}

// Instrument records request count and latency under the matched route
// pattern, so path parameters do not blow up label cardinality.
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Recovery turns a panic into a 500 response.
func (m *Metrics) Recovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				m.panics.Inc()
				level.Error(logger).Log("msg", "recovered from panic", "panic", p, "stack", string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
			}
		}()
		c.Next()
	}
}

// Booking records one reservation outcome.
func (m *Metrics) Booking(operation, result string) {
	if m == nil {
		return
	}
	m.Bookings.WithLabelValues(operation, result).Inc()
}
