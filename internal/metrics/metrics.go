// Package metrics defines the Prometheus collectors for the site.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/uditisharmaaa/portfolio/internal/content"
)

const namespace = "portfolio"

// HTTP metrics. The route label is the matched route template, or
// "unmatched", so its cardinality is bounded by the route table.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Page metrics. Visitors sending DNT are not counted.
var (
	PageViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Rendered page views by view",
		},
		[]string{"view"},
	)

	PostViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_views_total",
			Help:      "Views of existing blog posts by post id",
		},
		[]string{"post"},
	)

	ProjectFilterTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "project_filter_total",
			Help:      "Project filter selections by category",
		},
		[]string{"category"},
	)
)

// Content metrics.
var (
	ContentReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_reloads_total",
			Help:      "Content reloads by result",
		},
		[]string{"result"},
	)

	PostsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "posts",
		Help:      "Number of blog posts in the current content snapshot",
	})

	ProjectsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "projects",
		Help:      "Number of projects in the current content snapshot",
	})
)

// RecordSnapshot updates the content gauges.
func RecordSnapshot(s *content.Store) {
	PostsTotal.Set(float64(len(s.Posts())))
	ProjectsTotal.Set(float64(len(s.Projects())))
}

// RecordReload counts one reload attempt. "partial" means the snapshot was
// published but a listener, such as the search index, failed.
func RecordReload(err error) {
	result := "success"
	switch {
	case errors.Is(err, content.ErrReloadListener):
		result = "partial"
	case err != nil:
		result = "error"
	}
	ContentReloadsTotal.WithLabelValues(result).Inc()
}
