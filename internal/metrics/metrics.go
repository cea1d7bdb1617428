package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by route, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollbook_http_requests_total",
		Help: "HTTP requests processed, labeled by route, method and status.",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rollbook_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// SessionsRecorded counts class sessions created by marking calls.
	SessionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rollbook_sessions_recorded_total",
		Help: "Class sessions recorded.",
	})

	// AttendanceMarked counts individual attendance records created.
	AttendanceMarked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rollbook_attendance_marked_total",
		Help: "Attendance records created.",
	})
)

// GinMiddleware instruments every request. Unmatched routes are grouped
// under a single label to keep cardinality bounded.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
