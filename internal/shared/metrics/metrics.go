package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "passin"

var (
	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "attendees_fetch_duration_seconds",
		Help:      "Latency of attendee page requests to the remote API.",
		Buckets:   prometheus.DefBuckets,
	})
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendees_fetch_total",
		Help:      "Attendee page requests by outcome.",
	}, []string{"outcome"})
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendees_cache_lookups_total",
		Help:      "Page cache lookups by result.",
	}, []string{"result"})
	liveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_view_sessions",
		Help:      "Websocket live views currently attached.",
	})
)

// ObserveFetch records one upstream request.
func ObserveFetch(elapsed time.Duration, err error) {
	fetchDuration.Observe(elapsed.Seconds())
	fetchTotal.WithLabelValues(outcome(err)).Inc()
}

// CacheHit counts a page served from cache.
func CacheHit() { cacheLookups.WithLabelValues("hit").Inc() }

// CacheMiss counts a lookup that went upstream.
func CacheMiss() { cacheLookups.WithLabelValues("miss").Inc() }

// SessionOpened and SessionClosed track the live sessions gauge.
func SessionOpened() { liveSessions.Inc() }

func SessionClosed() { liveSessions.Dec() }

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "failure"
	}
}
