package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on /metrics
type Metrics struct {
	registry        *prometheus.Registry
	plansBuilt      *prometheus.CounterVec
	linesToBuy      prometheus.Histogram
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the server collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		plansBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "supplyplan",
			Name:      "plans_built_total",
			Help:      "Supply plans computed, by planning mode.",
		}, []string{"mode"}),
		linesToBuy: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "supplyplan",
			Name:      "plan_ingredients_to_buy",
			Help:      "Ingredients needing purchase per computed plan.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "supplyplan",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(m.plansBuilt, m.linesToBuy, m.requestDuration)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observePlan(mode string, needingPurchase int) {
	m.plansBuilt.WithLabelValues(mode).Inc()
	m.linesToBuy.Observe(float64(needingPurchase))
}

func (m *Metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
